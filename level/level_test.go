package level

import (
	"os"
	"testing"

	"github.com/automoto/cleave/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArena(t *testing.T) {
	layout, err := Load(Maps, "maps/arena.tmx")
	require.NoError(t, err)

	assert.Equal(t, "arena", layout.Name)
	assert.Equal(t, 1024, layout.Width)
	assert.Equal(t, 256, layout.Height)

	require.Len(t, layout.Walls, 3)
	assert.Equal(t, Rect{X: 0, Y: 224, W: 1024, H: 32}, layout.Walls[0])

	assert.True(t, layout.HasPlayer)
	assert.Equal(t, Point{X: 64, Y: 176}, layout.PlayerSpawn)

	require.Len(t, layout.Enemies, 3)
	assert.Equal(t, []string{"demon", "brute", "imp"}, []string{
		layout.Enemies[0].Type, layout.Enemies[1].Type, layout.Enemies[2].Type,
	})
	assert.Nil(t, layout.Enemies[0].AlwaysChase)
	require.NotNil(t, layout.Enemies[1].DetectionRange)
	assert.Equal(t, 480.0, *layout.Enemies[1].DetectionRange)
	require.NotNil(t, layout.Enemies[2].AlwaysChase)
	assert.True(t, *layout.Enemies[2].AlwaysChase)
}

func TestEnemySpawnApply(t *testing.T) {
	chase := true
	reach := 99.0
	spawn := EnemySpawn{AlwaysChase: &chase, AttackRange: &reach}

	et := config.EnemyTypeConfig{AlwaysChase: false, DetectionRange: 10, AttackRange: 5}
	spawn.Apply(&et)
	assert.True(t, et.AlwaysChase)
	assert.Equal(t, 10.0, et.DetectionRange)
	assert.Equal(t, 99.0, et.AttackRange)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(Maps, "maps/missing.tmx")
	assert.Error(t, err)

	_, err = Load(os.DirFS("testdata"), "broken.tmx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "always_chase")
}

func TestLoadAll(t *testing.T) {
	layouts, names, err := LoadAll(Maps, "maps")
	require.NoError(t, err)
	assert.Equal(t, []string{"arena"}, names)
	assert.Contains(t, layouts, "arena")

	_, _, err = LoadAll(Maps, "nowhere")
	assert.Error(t, err)
}
