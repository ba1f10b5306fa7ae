package systems

import (
	"math"
	"time"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/spatial"
	"github.com/automoto/cleave/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEnemies runs the enemy state machine. Each tick an enemy picks, in
// priority order: attack, chase, idle. Dead is terminal and a swing in
// flight pins the state until its hit lands.
func UpdateEnemies(ecs *ecs.ECS) {
	dt := tickDelta(ecs)
	sink := components.NewEventSink(ecs.World)

	var queue components.Scheduler
	if q := components.ScheduleOf(ecs.World); q != nil {
		queue = q
	}

	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		updateEnemy(ecs.World, sink, queue, e, dt)
	})
}

func updateEnemy(w donburi.World, sink components.SignalSink, queue components.Scheduler, e *donburi.Entry, dt time.Duration) {
	enemy := components.Enemy.Get(e)
	state := components.State.Get(e)
	physics := components.Physics.Get(e)
	health := components.Health.Get(e)

	state.StateTimer += dt
	enemy.AttackCooldown.Tick(dt)

	if !health.IsAlive() {
		if state.Enter(cfg.Dead) {
			enemy.Attacking = false
			setRunning(sink, e.Entity(), &enemy.Moving, false)
		}
		physics.SpeedX = 0
		return
	}

	if enemy.Attacking {
		physics.SpeedX = 0
		return
	}

	target := acquireTarget(w, enemy)
	if target == nil {
		enemyIdle(sink, e, enemy, state, physics)
		return
	}

	self := spatial.Center(components.Object.Get(e).Object)
	goal := spatial.Center(components.Object.Get(target).Object)
	dist := math.Hypot(goal.X-self.X, goal.Y-self.Y)
	grounded := physics.Grounded()

	switch {
	case dist <= enemy.AttackRange && enemy.AttackCooldown.Ready() && grounded:
		physics.SpeedX = 0
		enemy.Facing = facingToward(self.X, goal.X, enemy.Facing)
		state.Enter(cfg.Attack)
		setRunning(sink, e.Entity(), &enemy.Moving, false)
		startEnemyAttack(sink, queue, e, enemy)
	case (enemy.AlwaysChase || dist <= enemy.DetectionRange) && dist > enemy.AttackRange && grounded:
		enemy.Facing = facingToward(self.X, goal.X, enemy.Facing)
		physics.SpeedX = math.Copysign(enemy.MoveSpeed, goal.X-self.X)
		if goal.X == self.X {
			physics.SpeedX = 0
		}
		state.Enter(cfg.Chase)
		setRunning(sink, e.Entity(), &enemy.Moving, physics.SpeedX != 0)
	default:
		enemyIdle(sink, e, enemy, state, physics)
	}
}

func enemyIdle(sink components.SignalSink, e *donburi.Entry, enemy *components.EnemyData, state *components.StateData, physics *components.PhysicsData) {
	physics.SpeedX = 0
	state.Enter(cfg.Idle)
	setRunning(sink, e.Entity(), &enemy.Moving, false)
}

// acquireTarget keeps the current target while it exists and otherwise falls
// back to the player.
func acquireTarget(w donburi.World, enemy *components.EnemyData) *donburi.Entry {
	if enemy.Target != nil && enemy.Target.Valid() && enemy.Target.HasComponent(components.Object) {
		return enemy.Target
	}
	enemy.Target = nil
	if player, ok := tags.Player.First(w); ok {
		enemy.Target = player
	}
	return enemy.Target
}

// startEnemyAttack begins a swing. The hit lands after the windup; without a
// scheduler it lands at once.
func startEnemyAttack(sink components.SignalSink, queue components.Scheduler, e *donburi.Entry, enemy *components.EnemyData) {
	enemy.Attacking = true
	sink.Trigger(e.Entity(), cfg.SignalAttack)
	enemy.AttackCooldown.Arm(enemy.CooldownTime)

	if queue == nil {
		landEnemyAttack(e)
		return
	}
	queue.ScheduleAfter(e.Entity(), enemy.AttackWindup, func() {
		landEnemyAttack(e)
	})
}

// landEnemyAttack resolves the swing against the player layer and releases
// the state lock.
func landEnemyAttack(e *donburi.Entry) {
	if !e.Valid() {
		return
	}
	enemy := components.Enemy.Get(e)
	if !enemy.Attacking {
		return
	}
	enemy.Attacking = false
	if !components.Health.Get(e).IsAlive() {
		return
	}

	obj := components.Object.Get(e).Object
	enemy.Melee.Resolve(
		attackPoint(obj, enemy.Facing, enemy.AttackOffset),
		enemy.AttackRadius,
		tags.ResolvPlayer,
	)
	components.State.Get(e).Enter(cfg.Idle)
}
