package systems

import (
	"math"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// contactEpsilon absorbs rounding left over from snapping flush to a solid.
const contactEpsilon = 1e-6

// UpdateCollisions moves every body by its speed, stopping at solids, and
// refreshes its ground contact. Characters pass through each other.
func UpdateCollisions(ecs *ecs.ECS) {
	dt := tickDelta(ecs).Seconds()
	sink := components.NewEventSink(ecs.World)

	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e).Object
		wasGrounded := physics.Grounded()

		resolveObjectHorizontalCollision(physics, obj, physics.SpeedX*dt)
		resolveObjectVerticalCollision(physics, obj, physics.SpeedY*dt, cfg.Physics.GroundProbe)

		if physics.Grounded() != wasGrounded {
			sink.SetBool(e.Entity(), cfg.SignalGrounded, physics.Grounded())
		}
	})
}

// resolveObjectHorizontalCollision moves object by dx, stopping flush
// against the first solid in the way.
func resolveObjectHorizontalCollision(physics *components.PhysicsData, object *resolv.Object, dx float64) {
	if dx == 0 {
		return
	}

	check := object.Check(dx, 0, tags.ResolvSolid)
	if check == nil {
		object.X += dx
		return
	}

	for _, solid := range check.ObjectsByTags(tags.ResolvSolid) {
		if !overlapsVertically(object, solid) {
			continue
		}
		var gap float64
		if dx > 0 {
			gap = solid.X - (object.X + object.W)
		} else {
			gap = object.X - (solid.X + solid.W)
		}
		if gap < -contactEpsilon || gap >= math.Abs(dx) {
			continue
		}
		physics.SpeedX = 0
		dx = math.Copysign(math.Max(gap, 0), dx)
	}

	object.X += dx
}

// resolveObjectVerticalCollision moves object by dy. Moving down (or
// resting), a solid within probe of the feet becomes the ground and the
// body snaps onto it.
func resolveObjectVerticalCollision(physics *components.PhysicsData, object *resolv.Object, dy, probe float64) {
	physics.OnGround = nil

	checkDistance := dy
	if dy >= 0 {
		checkDistance += probe
	}

	check := object.Check(0, checkDistance, tags.ResolvSolid)
	if check == nil {
		object.Y += dy
		return
	}

	if dy < 0 {
		object.Y += handleUpwardCollision(physics, object, check, dy)
		return
	}
	object.Y += handleDownwardCollision(physics, object, check, dy, probe)
}

func handleUpwardCollision(physics *components.PhysicsData, object *resolv.Object, check *resolv.Collision, dy float64) float64 {
	for _, solid := range check.ObjectsByTags(tags.ResolvSolid) {
		if !overlapsHorizontally(object, solid) {
			continue
		}
		gap := object.Y - (solid.Y + solid.H)
		if gap < -contactEpsilon || gap >= -dy {
			continue
		}
		physics.SpeedY = 0
		dy = -math.Max(gap, 0)
	}
	return dy
}

func handleDownwardCollision(physics *components.PhysicsData, object *resolv.Object, check *resolv.Collision, dy, probe float64) float64 {
	bottom := object.Y + object.H
	best := math.Inf(1)
	for _, solid := range check.ObjectsByTags(tags.ResolvSolid) {
		if !overlapsHorizontally(object, solid) {
			continue
		}
		// Only surfaces at or below the middle of the body count as ground.
		if solid.Y < object.Y+object.H/2 {
			continue
		}
		gap := solid.Y - bottom
		if gap > dy+probe || gap >= best {
			continue
		}
		best = gap
		physics.OnGround = solid
	}

	if physics.OnGround == nil {
		return dy
	}
	physics.SpeedY = 0
	return best
}

func overlapsHorizontally(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X
}

func overlapsVertically(a, b *resolv.Object) bool {
	return a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
