package systems

import (
	"github.com/automoto/cleave/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateHealth advances invulnerability windows and hit flashes.
func UpdateHealth(ecs *ecs.ECS) {
	dt := tickDelta(ecs)
	components.Health.Each(ecs.World, func(e *donburi.Entry) {
		components.Health.Get(e).Tick(dt)
	})
}

// UpdateDeaths removes every entity whose death sequence has completed:
// its collision object leaves the space, its pending callbacks are
// cancelled and an ExpiredEvent is published.
func UpdateDeaths(ecs *ecs.ECS) {
	var expired []*donburi.Entry
	components.Health.Each(ecs.World, func(e *donburi.Entry) {
		if components.Health.Get(e).Expired() {
			expired = append(expired, e)
		}
	})

	space := components.SpaceOf(ecs.World)
	queue := components.ScheduleOf(ecs.World)
	for _, e := range expired {
		event := components.ExpiredEvent{Entity: e.Entity(), Kind: components.KindOf(e)}
		if e.HasComponent(components.Enemy) {
			event.TypeName = components.Enemy.Get(e).TypeName
		}

		if obj := components.Object.Get(e); obj != nil && space != nil {
			space.Remove(obj.Object)
		}
		if queue != nil {
			queue.CancelAll(e.Entity())
		}
		ecs.World.Remove(e.Entity())
		components.ExpiredEvents.Publish(ecs.World, event)
	}
}
