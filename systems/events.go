package systems

import (
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// UpdateEvents delivers the signal, damage, death and expiry events
// published during the tick. It runs last.
func UpdateEvents(ecs *ecs.ECS) {
	events.ProcessAllEvents(ecs.World)
}
