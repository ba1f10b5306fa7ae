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

// CreateEnemy spawns an enemy of type et with its top-left corner at (x, y).
// The player, if already spawned, becomes its target.
func CreateEnemy(ecs *ecs.ECS, x, y float64, et cfg.EnemyTypeConfig) (*donburi.Entry, error) {
	if err := et.Validate(); err != nil {
		return nil, err
	}
	health, err := components.NewHealth(0, et.Health, healthDeps(ecs.World, components.KindEnemy))
	if err != nil {
		return nil, err
	}
	melee, err := components.NewMeleeResolver(overlapper(ecs.World), et.Melee)
	if err != nil {
		return nil, err
	}

	enemy := archetypes.Enemy.Spawn(ecs)
	health.Owner = enemy.Entity()

	// Create collision object
	obj := resolv.NewObject(x, y, et.CollisionWidth, et.CollisionHeight)
	obj.SetShape(resolv.NewRectangle(0, 0, et.CollisionWidth, et.CollisionHeight))
	obj.AddTags("character", tags.ResolvEnemy)
	obj.Data = enemy
	components.Object.SetValue(enemy, components.ObjectData{Object: obj})
	if space := components.SpaceOf(ecs.World); space != nil {
		space.Add(obj)
	}

	enemyData := components.EnemyData{
		TypeName:       et.Name,
		Facing:         components.FacingLeft, // Start facing left
		MoveSpeed:      et.MoveSpeed,
		DetectionRange: et.DetectionRange,
		AttackRange:    et.AttackRange,
		AlwaysChase:    et.AlwaysChase,
		Melee:          melee,
		CooldownTime:   et.AttackCooldown,
		AttackWindup:   et.AttackWindup,
		AttackRadius:   et.AttackRadius,
		AttackOffset:   et.AttackOffset,
	}
	if player, ok := tags.Player.First(ecs.World); ok {
		enemyData.Target = player
	}

	components.Enemy.SetValue(enemy, enemyData)
	components.State.SetValue(enemy, components.StateData{
		CurrentState:  cfg.Idle,
		PreviousState: cfg.StateNone,
	})
	components.Physics.SetValue(enemy, components.PhysicsData{
		Gravity:      cfg.Physics.Gravity,
		MaxFallSpeed: cfg.Physics.MaxFallSpeed,
		GroundBias:   et.GroundBias,
	})
	components.Health.Set(enemy, health)

	return enemy, nil
}

// RetuneEnemy applies et to a live enemy. Health, target, cooldown progress
// and any swing in flight are kept.
func RetuneEnemy(enemy *donburi.Entry, et cfg.EnemyTypeConfig) error {
	if err := et.Validate(); err != nil {
		return err
	}
	if err := components.Health.Get(enemy).Retune(et.Health); err != nil {
		return err
	}
	e := components.Enemy.Get(enemy)
	e.MoveSpeed = et.MoveSpeed
	e.DetectionRange = et.DetectionRange
	e.AttackRange = et.AttackRange
	e.AlwaysChase = et.AlwaysChase
	e.Melee.Damage = et.Melee.Damage
	e.CooldownTime = et.AttackCooldown
	e.AttackWindup = et.AttackWindup
	e.AttackRadius = et.AttackRadius
	e.AttackOffset = et.AttackOffset
	components.Physics.Get(enemy).GroundBias = et.GroundBias
	return nil
}
