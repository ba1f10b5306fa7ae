package systems

import (
	"time"

	"github.com/automoto/cleave/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSchedule advances the encounter clock and runs the delayed callbacks
// that are due. It must run first so callbacks see the state left by the
// previous tick.
func UpdateSchedule(ecs *ecs.ECS) {
	clock := components.ClockOf(ecs.World)
	if clock == nil {
		return
	}
	clock.Now += clock.Delta
	clock.Ticks++

	if queue := components.ScheduleOf(ecs.World); queue != nil {
		queue.Advance(clock.Delta)
	}
}

// tickDelta is the simulated length of the current tick.
func tickDelta(ecs *ecs.ECS) time.Duration {
	if c := components.ClockOf(ecs.World); c != nil {
		return c.Delta
	}
	return 0
}
