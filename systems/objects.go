package systems

import (
	"github.com/automoto/cleave/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateObjects re-buckets moved objects into the space cells. It must run
// after every system that moves objects.
func UpdateObjects(ecs *ecs.ECS) {
	for e := range components.Object.Iter(ecs.World) {
		obj := components.Object.Get(e)
		obj.Update()
	}
}
