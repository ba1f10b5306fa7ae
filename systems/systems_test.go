package systems

import (
	"math"
	"testing"
	"time"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/spatial"
	"github.com/automoto/cleave/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const tick = 20 * time.Millisecond

// newTestECS mirrors the encounter's system order over a 1024x256 area with
// a floor whose top is at y=224.
func newTestECS(t *testing.T) *ecs.ECS {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	e.AddSystem(UpdateSchedule)
	e.AddSystem(UpdateInput)
	e.AddSystem(UpdatePlayer)
	e.AddSystem(UpdateEnemies)
	e.AddSystem(UpdatePhysics)
	e.AddSystem(UpdateCollisions)
	e.AddSystem(UpdateObjects)
	e.AddSystem(UpdateHealth)
	e.AddSystem(UpdateDeaths)
	e.AddSystem(UpdateEvents)

	factory.CreateEncounter(e, 1024, 256, 16)
	factory.CreateWall(e, 0, 224, 1024, 32)
	return e
}

func step(e *ecs.ECS, actions ...cfg.ActionID) {
	var in components.InputSnapshot
	for _, a := range actions {
		in[a] = true
	}
	components.ClockOf(e.World).Delta = tick
	controls, _ := components.Controls.First(e.World)
	components.Controls.Get(controls).Snapshot = in
	e.Update()
}

// signalLog records trigger signals with the tick they were raised on.
type signalLog struct {
	ticks map[string][]uint64
}

func recordSignals(e *ecs.ECS, entity donburi.Entity) *signalLog {
	log := &signalLog{ticks: map[string][]uint64{}}
	components.SignalEvents.Subscribe(e.World, func(w donburi.World, s components.SignalEvent) {
		if s.Entity != entity || !s.Trigger {
			return
		}
		log.ticks[s.Name] = append(log.ticks[s.Name], components.ClockOf(w).Ticks)
	})
	return log
}

func spawnPlayer(t *testing.T, e *ecs.ECS, x float64) *donburi.Entry {
	t.Helper()
	p, err := factory.CreatePlayer(e, x, 184)
	require.NoError(t, err)
	return p
}

func spawnEnemy(t *testing.T, e *ecs.ECS, x float64, adjust func(*cfg.EnemyTypeConfig)) *donburi.Entry {
	t.Helper()
	et, err := cfg.Enemy.Lookup("demon")
	require.NoError(t, err)
	if adjust != nil {
		adjust(&et)
	}
	enemy, err := factory.CreateEnemy(e, x, 224-et.CollisionHeight, et)
	require.NoError(t, err)
	return enemy
}

func TestEnemyChasesThenAttacksInRange(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 100)
	enemy := spawnEnemy(t, e, 400, nil)
	signals := recordSignals(e, enemy.Entity())

	state := components.State.Get(enemy)
	physics := components.Physics.Get(enemy)
	data := components.Enemy.Get(enemy)

	step(e)
	step(e)
	require.Equal(t, cfg.Chase, state.CurrentState)
	assert.Equal(t, -data.MoveSpeed, physics.SpeedX)
	assert.Equal(t, components.FacingLeft, data.Facing)

	attackTick := 0
	for i := 0; i < 300 && attackTick == 0; i++ {
		step(e)
		if state.CurrentState == cfg.Attack {
			attackTick = i
		}
	}
	require.NotZero(t, attackTick, "enemy never attacked")
	assert.Zero(t, physics.SpeedX)
	assert.True(t, data.Attacking)
	assert.LessOrEqual(t, distance(enemy, player), data.AttackRange)
	require.Len(t, signals.ticks[cfg.SignalAttack], 1)

	// The hit lands after the windup, not before.
	playerHealth := components.Health.Get(player)
	windupTicks := int(data.AttackWindup / tick)
	for i := 1; i < windupTicks; i++ {
		step(e)
		require.Equal(t, cfg.Attack, state.CurrentState)
		require.Zero(t, physics.SpeedX)
		require.Equal(t, 10, playerHealth.Current, "tick %d of the windup", i)
	}
	step(e)
	assert.Equal(t, 9, playerHealth.Current)
	assert.False(t, data.Attacking)

	// No new swing until the cooldown has run out.
	for i := 0; i < 150; i++ {
		step(e)
	}
	attacks := signals.ticks[cfg.SignalAttack]
	require.GreaterOrEqual(t, len(attacks), 2)
	assert.Equal(t, uint64(data.CooldownTime/tick), attacks[1]-attacks[0])
}

func TestEnemyOutOfRangeStaysIdle(t *testing.T) {
	e := newTestECS(t)
	spawnPlayer(t, e, 100)
	enemy := spawnEnemy(t, e, 600, func(et *cfg.EnemyTypeConfig) {
		et.AlwaysChase = false
		et.DetectionRange = 200
	})

	for i := 0; i < 20; i++ {
		step(e)
	}
	assert.Equal(t, cfg.Idle, components.State.Get(enemy).CurrentState)
	assert.Zero(t, components.Physics.Get(enemy).SpeedX)
}

func TestEnemyWithoutTargetIdles(t *testing.T) {
	e := newTestECS(t)
	enemy := spawnEnemy(t, e, 600, nil)

	for i := 0; i < 5; i++ {
		step(e)
	}
	assert.Equal(t, cfg.Idle, components.State.Get(enemy).CurrentState)
	assert.Nil(t, components.Enemy.Get(enemy).Target)

	// A player spawned later is picked up.
	spawnPlayer(t, e, 100)
	step(e)
	assert.Equal(t, cfg.Chase, components.State.Get(enemy).CurrentState)
}

func TestDeadEnemyStopsMoving(t *testing.T) {
	e := newTestECS(t)
	spawnPlayer(t, e, 100)
	enemy := spawnEnemy(t, e, 400, nil)
	signals := recordSignals(e, enemy.Entity())

	for i := 0; i < 5; i++ {
		step(e)
	}
	require.NotZero(t, components.Physics.Get(enemy).SpeedX)

	require.True(t, components.Health.Get(enemy).TakeDamage(10))
	for i := 0; i < 10; i++ {
		step(e)
		assert.Equal(t, cfg.Dead, components.State.Get(enemy).CurrentState)
		assert.Zero(t, components.Physics.Get(enemy).SpeedX)
	}
	assert.Len(t, signals.ticks[cfg.SignalDeath], 1)
}

func TestEnemyDyingDuringWindupNeverLands(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 100)
	enemy := spawnEnemy(t, e, 140, nil)

	for i := 0; i < 5 && components.State.Get(enemy).CurrentState != cfg.Attack; i++ {
		step(e)
	}
	require.True(t, components.Enemy.Get(enemy).Attacking)

	components.Health.Get(enemy).TakeDamage(10)
	for i := 0; i < 60; i++ {
		step(e)
	}
	assert.Equal(t, 10, components.Health.Get(player).Current)
}

func TestSimultaneousEnemyHitsLandOnce(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 100)
	left := spawnEnemy(t, e, 60, nil)
	right := spawnEnemy(t, e, 140, nil)
	signals := recordSignals(e, player.Entity())
	leftAttacks := recordSignals(e, left.Entity())
	rightAttacks := recordSignals(e, right.Entity())

	for i := 0; i < 60; i++ {
		step(e)
	}

	// Both swings start on the same tick and share a windup.
	require.Len(t, leftAttacks.ticks[cfg.SignalAttack], 1)
	require.Len(t, rightAttacks.ticks[cfg.SignalAttack], 1)
	require.Equal(t, leftAttacks.ticks[cfg.SignalAttack], rightAttacks.ticks[cfg.SignalAttack])
	assert.Equal(t, components.FacingRight, components.Enemy.Get(left).Facing)
	assert.Equal(t, components.FacingLeft, components.Enemy.Get(right).Facing)

	// The first hit's invulnerability absorbs the second.
	assert.Equal(t, 9, components.Health.Get(player).Current)
	assert.Len(t, signals.ticks[cfg.SignalHit], 1)
}

func TestPlayerAttackCooldown(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 100)
	// A passive dummy centred on the player's attack point.
	dummy := spawnEnemy(t, e, 116, func(et *cfg.EnemyTypeConfig) {
		et.Health.Max = 10
		et.Health.Invulnerability = 0
		et.AlwaysChase = false
		et.DetectionRange = 0
		et.AttackRange = 0
	})
	signals := recordSignals(e, player.Entity())
	health := components.Health.Get(dummy)

	interval := components.Player.Get(player).AttackInterval
	require.Equal(t, time.Second, interval)

	// Press on odd ticks, release on even ones.
	readyTick := int(interval/tick) + 1
	for i := 1; i < readyTick; i++ {
		if i%2 == 1 {
			step(e, cfg.ActionAttack)
		} else {
			step(e)
		}
	}
	assert.Equal(t, 9, health.Current)
	assert.Len(t, signals.ticks[cfg.SignalAttack], 1)

	step(e, cfg.ActionAttack)
	assert.Equal(t, 8, health.Current)
	assert.Len(t, signals.ticks[cfg.SignalAttack], 2)
}

func TestPlayerAttackNeedsFreshPress(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 100)
	signals := recordSignals(e, player.Entity())

	for i := 0; i < 120; i++ {
		step(e, cfg.ActionAttack)
	}
	assert.Len(t, signals.ticks[cfg.SignalAttack], 1)
}

func TestPlayerJumpOnlyWhenGrounded(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 100)
	signals := recordSignals(e, player.Entity())
	physics := components.Physics.Get(player)
	obj := components.Object.Get(player).Object

	// Ground contact is only known after the first collision pass.
	step(e, cfg.ActionJump)
	assert.Empty(t, signals.ticks[cfg.SignalJump])
	require.True(t, physics.Grounded())

	step(e)
	step(e, cfg.ActionJump)
	require.Len(t, signals.ticks[cfg.SignalJump], 1)
	assert.Less(t, physics.SpeedY, 0.0)
	assert.Less(t, obj.Y, 184.0)
	assert.False(t, physics.Grounded())

	// No air jump.
	speed := physics.SpeedY
	step(e)
	step(e, cfg.ActionJump)
	assert.Len(t, signals.ticks[cfg.SignalJump], 1)
	assert.Greater(t, physics.SpeedY, speed)

	for i := 0; i < 100; i++ {
		step(e)
	}
	assert.True(t, physics.Grounded())
	assert.InDelta(t, 184.0, obj.Y, 1e-9)
}

func TestPlayerFacingAndMovement(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 500)
	data := components.Player.Get(player)
	physics := components.Physics.Get(player)

	step(e, cfg.ActionMoveRight)
	assert.Equal(t, components.FacingRight, data.Facing)
	assert.Equal(t, data.MoveSpeed, physics.SpeedX)

	step(e, cfg.ActionMoveLeft)
	assert.Equal(t, components.FacingLeft, data.Facing)
	assert.Equal(t, -data.MoveSpeed, physics.SpeedX)

	step(e, cfg.ActionMoveLeft, cfg.ActionMoveRight)
	assert.Equal(t, components.FacingLeft, data.Facing)

	step(e)
	assert.Equal(t, components.FacingLeft, data.Facing)
	assert.Zero(t, physics.SpeedX)
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	e := newTestECS(t)
	player := spawnPlayer(t, e, 500)
	signals := recordSignals(e, player.Entity())
	step(e)

	components.Health.Get(player).TakeDamage(100)
	step(e, cfg.ActionMoveRight, cfg.ActionAttack, cfg.ActionJump)
	assert.Zero(t, components.Physics.Get(player).SpeedX)
	assert.Empty(t, signals.ticks[cfg.SignalAttack])
	assert.Empty(t, signals.ticks[cfg.SignalJump])
}

func TestWallsStopMovement(t *testing.T) {
	e := newTestECS(t)
	factory.CreateWall(e, 200, 160, 32, 64)
	player := spawnPlayer(t, e, 150)
	obj := components.Object.Get(player).Object

	for i := 0; i < 50; i++ {
		step(e, cfg.ActionMoveRight)
	}
	assert.InDelta(t, 200.0, obj.X+obj.W, 1e-9)
	assert.Zero(t, components.Physics.Get(player).SpeedX)
}

func TestExpiredEntityIsRemoved(t *testing.T) {
	e := newTestECS(t)
	enemy := spawnEnemy(t, e, 600, nil)
	id := enemy.Entity()
	obj := components.Object.Get(enemy).Object
	queue := components.ScheduleOf(e.World)

	fired := false
	queue.ScheduleAfter(id, 10*time.Second, func() { fired = true })

	var expired []components.ExpiredEvent
	components.ExpiredEvents.Subscribe(e.World, func(_ donburi.World, evt components.ExpiredEvent) {
		expired = append(expired, evt)
	})

	step(e)
	components.Health.Get(enemy).TakeDamage(10)
	for i := 0; i < 50; i++ {
		step(e)
	}
	require.Len(t, expired, 1)
	assert.Equal(t, "demon", expired[0].TypeName)
	assert.False(t, e.World.Valid(id))
	assert.NotContains(t, components.SpaceOf(e.World).Objects(), obj)

	for i := 0; i < 600; i++ {
		step(e)
	}
	assert.False(t, fired)
	assert.Len(t, expired, 1)
}

func distance(a, b *donburi.Entry) float64 {
	ac := spatial.Center(components.Object.Get(a).Object)
	bc := spatial.Center(components.Object.Get(b).Object)
	return math.Hypot(ac.X-bc.X, ac.Y-bc.Y)
}
