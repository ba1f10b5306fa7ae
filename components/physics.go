package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	SpeedX       float64 // pixels per second
	SpeedY       float64 // pixels per second, positive is down
	Gravity      float64
	MaxFallSpeed float64
	GroundBias   float64 // downward speed held while grounded
	OnGround     *resolv.Object
}

// Grounded reports whether the last collision pass found ground underfoot.
func (p *PhysicsData) Grounded() bool {
	return p.OnGround != nil
}

var Physics = donburi.NewComponentType[PhysicsData]()
