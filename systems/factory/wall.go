package factory

import (
	"github.com/automoto/cleave/archetypes"
	"github.com/automoto/cleave/components"
	"github.com/automoto/cleave/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateWall adds a solid rectangle agents stand on and collide with.
func CreateWall(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)

	// Create collision object
	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = wall // Link for O(1) lookup

	components.Object.SetValue(wall, components.ObjectData{Object: obj})

	// Add to space if it exists
	if space := components.SpaceOf(ecs.World); space != nil {
		space.Add(obj)
	}

	return wall
}
