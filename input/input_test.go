package input

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chaseScript = `
if view.has_enemy {
	if view.enemy_x > view.player_x {
		right = true
	} else {
		left = true
	}
}
runs := state.runs
if is_undefined(runs) {
	runs = 0
}
state.runs = runs + 1
attack = view.attack_ready && state.runs % 2 == 1
`

func TestScriptSource(t *testing.T) {
	src, err := NewScriptSource("chase", []byte(chaseScript))
	require.NoError(t, err)

	in, err := src.Next(View{HasEnemy: true, PlayerX: 10, EnemyX: 50, AttackReady: true})
	require.NoError(t, err)
	assert.True(t, in[cfg.ActionMoveRight])
	assert.False(t, in[cfg.ActionMoveLeft])
	assert.True(t, in[cfg.ActionAttack])

	// Outputs reset every run and state carries over.
	in, err = src.Next(View{HasEnemy: true, PlayerX: 50, EnemyX: 10, AttackReady: true})
	require.NoError(t, err)
	assert.True(t, in[cfg.ActionMoveLeft])
	assert.False(t, in[cfg.ActionMoveRight])
	assert.False(t, in[cfg.ActionAttack])

	in, err = src.Next(View{})
	require.NoError(t, err)
	assert.Equal(t, components.InputSnapshot{}, in)
}

func TestScriptErrors(t *testing.T) {
	_, err := NewScriptSource("bad", []byte("left = ("))
	assert.Error(t, err)

	src, err := NewScriptSource("boom", []byte(`x := view.missing + 1`))
	require.NoError(t, err)
	_, err = src.Next(View{})
	assert.Error(t, err)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.tengo"))
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump.tengo")
	require.NoError(t, os.WriteFile(path, []byte("jump = view.grounded"), 0o644))

	src, err := LoadScript(path)
	require.NoError(t, err)
	in, err := src.Next(View{Grounded: true})
	require.NoError(t, err)
	assert.True(t, in[cfg.ActionJump])
}

func TestChaseSourceApproachesAndSwings(t *testing.T) {
	c := NewChaseSource(cfg.BotDifficultyHard)
	far := View{Alive: true, HasEnemy: true, Facing: 1, PlayerX: 0, EnemyX: 200, AttackReady: true, Health: 10, MaxHealth: 10}

	in, err := c.Next(far)
	require.NoError(t, err)
	assert.True(t, in[cfg.ActionMoveRight])
	assert.False(t, in[cfg.ActionAttack])

	near := far
	near.EnemyX = 20
	swings := 0
	for i := 0; i < 10; i++ {
		in, err = c.Next(near)
		require.NoError(t, err)
		if in[cfg.ActionAttack] {
			swings++
			// The next tick must release so a fresh press can register.
			in, err = c.Next(near)
			require.NoError(t, err)
			assert.False(t, in[cfg.ActionAttack])
		}
	}
	assert.Positive(t, swings)

	behind := near
	behind.EnemyX = -20
	in, err = c.Next(behind)
	require.NoError(t, err)
	assert.True(t, in[cfg.ActionMoveLeft], "turns to face the enemy")
}

func TestChaseSourceIdleWithoutEnemy(t *testing.T) {
	c := NewChaseSource(cfg.BotDifficultyNormal)
	in, err := c.Next(View{Alive: true})
	require.NoError(t, err)
	assert.Equal(t, components.InputSnapshot{}, in)
}

func TestObserve(t *testing.T) {
	enc := scenes.NewEncounter(1024, 256)
	enc.AddWall(0, 224, 1024, 32)
	_, err := enc.SpawnPlayer(100, 184)
	require.NoError(t, err)
	_, err = enc.SpawnEnemy(300, 184, "demon")
	require.NoError(t, err)
	_, err = enc.SpawnEnemy(700, 184, "demon")
	require.NoError(t, err)

	enc.Tick(20*time.Millisecond, components.InputSnapshot{})
	v := Observe(enc.World())

	assert.True(t, v.Alive)
	assert.True(t, v.Grounded)
	assert.Equal(t, 2, v.Enemies)
	assert.True(t, v.HasEnemy)
	assert.Greater(t, v.EnemyX, v.PlayerX)
	assert.Less(t, v.EnemyX, 500.0, "nearest enemy is the first one")
	assert.Equal(t, uint64(1), v.Tick)
}
