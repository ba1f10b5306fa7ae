package components

import (
	"time"

	"github.com/yohamta/donburi"
)

type EnemyData struct {
	TypeName string // "demon", "brute", "imp"...
	Facing   Facing

	// Target is the entry chased and attacked. It is acquired from the
	// player when nil.
	Target *donburi.Entry

	// AI tuning
	MoveSpeed      float64
	DetectionRange float64
	AttackRange    float64
	AlwaysChase    bool

	// Combat
	Melee          *MeleeResolver
	AttackCooldown CooldownData
	CooldownTime   time.Duration // armed on every swing
	AttackWindup   time.Duration // swing start to hit
	AttackRadius   float64
	AttackOffset   float64

	// Attacking is set from the swing until its hit lands, so the swing can't
	// be interrupted by chase or idle.
	Attacking bool
	Moving    bool // last running level sent to the sink
}

var Enemy = donburi.NewComponentType[EnemyData]()
