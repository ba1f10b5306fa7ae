package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// Facing is the horizontal direction an agent looks in.
type Facing float64

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

type PlayerData struct {
	Facing    Facing
	MoveSpeed float64
	JumpSpeed float64

	// Combat
	Melee          *MeleeResolver
	AttackCooldown CooldownData
	AttackInterval time.Duration // 1 / attack rate
	AttackRadius   float64
	AttackOffset   float64 // attack point distance in front of the body centre

	Running bool // last running level sent to the sink
}

var Player = donburi.NewComponentType[PlayerData]()
