package systems

import (
	"time"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdatePlayer(ecs *ecs.ECS) {
	dt := tickDelta(ecs)
	sink := components.NewEventSink(ecs.World)

	tags.Player.Each(ecs.World, func(playerEntry *donburi.Entry) {
		updateSinglePlayer(sink, playerEntry, dt)
	})
}

func updateSinglePlayer(sink components.SignalSink, playerEntry *donburi.Entry, dt time.Duration) {
	player := components.Player.Get(playerEntry)
	physics := components.Physics.Get(playerEntry)
	input := components.Input.Get(playerEntry)
	health := components.Health.Get(playerEntry)
	playerObject := components.Object.Get(playerEntry).Object
	self := playerEntry.Entity()

	player.AttackCooldown.Tick(dt)

	// Controls are dropped while the death sequence plays.
	if !health.IsAlive() {
		physics.SpeedX = 0
		setRunning(sink, self, &player.Running, false)
		return
	}

	intent := input.Axis()
	physics.SpeedX = intent * player.MoveSpeed
	if intent != 0 && components.Facing(intent) != player.Facing {
		player.Facing = components.Facing(intent)
	}
	setRunning(sink, self, &player.Running, intent != 0)

	// No air jumps and no buffering: the press is lost when airborne.
	if input.Action(cfg.ActionJump).JustPressed && physics.Grounded() {
		physics.SpeedY = -player.JumpSpeed
		physics.OnGround = nil
		sink.Trigger(self, cfg.SignalJump)
		sink.SetBool(self, cfg.SignalGrounded, false)
	}

	// The player's hit lands on the same tick as the press.
	if input.Action(cfg.ActionAttack).JustPressed && player.AttackCooldown.Ready() {
		sink.Trigger(self, cfg.SignalAttack)
		player.Melee.Resolve(
			attackPoint(playerObject, player.Facing, player.AttackOffset),
			player.AttackRadius,
			tags.ResolvEnemy,
		)
		player.AttackCooldown.Arm(player.AttackInterval)
	}
}
