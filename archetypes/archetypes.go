package archetypes

import (
	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Health,
		components.Physics,
		components.Input,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Object,
		components.Health,
		components.Physics,
		components.State,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Encounter = newArchetype(
		tags.Encounter,
		components.Space,
		components.Schedule,
		components.Clock,
		components.Controls,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
