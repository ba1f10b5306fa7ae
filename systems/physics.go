package systems

import (
	"math"

	"github.com/automoto/cleave/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics applies gravity and the grounded bias to every body.
// Horizontal speed is owned by the controllers and left untouched.
func UpdatePhysics(ecs *ecs.ECS) {
	dt := tickDelta(ecs).Seconds()

	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)

		// Apply gravity
		physics.SpeedY = math.Min(physics.SpeedY+physics.Gravity*dt, physics.MaxFallSpeed)

		// Keep grounded walkers pressed onto the surface. A jump (negative
		// speed) is left alone.
		if physics.Grounded() && physics.SpeedY >= 0 {
			physics.SpeedY = math.Max(physics.SpeedY, physics.GroundBias)
		}
	})
}
