package factory

import (
	"github.com/automoto/cleave/archetypes"
	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlayer spawns the player with its top-left corner at (x, y) using
// cfg.Player. Nothing is spawned when the configuration is invalid.
func CreatePlayer(ecs *ecs.ECS, x, y float64) (*donburi.Entry, error) {
	pc := cfg.Player
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	health, err := components.NewHealth(0, pc.Health, healthDeps(ecs.World, components.KindPlayer))
	if err != nil {
		return nil, err
	}
	melee, err := components.NewMeleeResolver(overlapper(ecs.World), pc.Melee)
	if err != nil {
		return nil, err
	}

	player := archetypes.Player.Spawn(ecs)
	health.Owner = player.Entity()

	obj := resolv.NewObject(x, y, pc.CollisionWidth, pc.CollisionHeight)
	obj.SetShape(resolv.NewRectangle(0, 0, pc.CollisionWidth, pc.CollisionHeight))
	obj.AddTags("character", tags.ResolvPlayer)
	obj.Data = player
	components.Object.SetValue(player, components.ObjectData{Object: obj})
	if space := components.SpaceOf(ecs.World); space != nil {
		space.Add(obj)
	}

	components.Player.SetValue(player, components.PlayerData{
		Facing:         components.FacingRight,
		MoveSpeed:      pc.MoveSpeed,
		JumpSpeed:      pc.JumpSpeed,
		Melee:          melee,
		AttackInterval: pc.AttackInterval(),
		AttackRadius:   pc.AttackRadius,
		AttackOffset:   pc.AttackOffset,
	})
	components.Physics.SetValue(player, components.PhysicsData{
		Gravity:      cfg.Physics.Gravity,
		MaxFallSpeed: cfg.Physics.MaxFallSpeed,
	})
	components.Health.Set(player, health)
	components.Input.SetValue(player, components.InputData{})

	return player, nil
}

// RetunePlayer applies pc to a live player. Health and cooldown progress are
// kept.
func RetunePlayer(player *donburi.Entry, pc cfg.PlayerConfig) error {
	if err := pc.Validate(); err != nil {
		return err
	}
	if err := components.Health.Get(player).Retune(pc.Health); err != nil {
		return err
	}
	p := components.Player.Get(player)
	p.MoveSpeed = pc.MoveSpeed
	p.JumpSpeed = pc.JumpSpeed
	p.Melee.Damage = pc.Melee.Damage
	p.AttackInterval = pc.AttackInterval()
	p.AttackRadius = pc.AttackRadius
	p.AttackOffset = pc.AttackOffset
	return nil
}
