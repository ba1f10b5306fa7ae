package systems

import (
	"github.com/automoto/cleave/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateInput latches the tick's input snapshot into every player.
// Must run BEFORE UpdatePlayer in the system order.
func UpdateInput(ecs *ecs.ECS) {
	controls, ok := components.Controls.First(ecs.World)
	if !ok {
		return
	}
	snapshot := components.Controls.Get(controls).Snapshot

	components.Input.Each(ecs.World, func(e *donburi.Entry) {
		components.Input.Get(e).Latch(snapshot)
	})
}
