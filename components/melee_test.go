package components

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/cleave/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// stubSpace returns a fixed result and counts queries.
type stubSpace struct {
	result  []*donburi.Entry
	queries int
	filters [][]string
}

func (s *stubSpace) QueryCircle(_ dmath.Vec2, _ float64, filter ...string) []*donburi.Entry {
	s.queries++
	s.filters = append(s.filters, filter)
	return s.result
}

var testMarker = donburi.NewTag().SetName("TestMarker")

func spawnDamageable(t *testing.T, w donburi.World, cfg config.HealthConfig) *donburi.Entry {
	t.Helper()
	entry := w.Entry(w.Create(Health))
	h, err := NewHealth(entry.Entity(), cfg, HealthDeps{})
	require.NoError(t, err)
	Health.Set(entry, h)
	return entry
}

func TestMeleeResolveHitsEachTargetOnce(t *testing.T) {
	w := donburi.NewWorld()
	cfg := config.HealthConfig{Max: 5, Invulnerability: 0}
	a := spawnDamageable(t, w, cfg)
	b := spawnDamageable(t, w, cfg)
	scenery := w.Entry(w.Create(testMarker))

	space := &stubSpace{result: []*donburi.Entry{a, b, scenery}}
	m, err := NewMeleeResolver(space, config.MeleeConfig{Damage: 2})
	require.NoError(t, err)

	hit := m.Resolve(dmath.Vec2{X: 10, Y: 10}, 16, "Enemy")
	assert.ElementsMatch(t, []*donburi.Entry{a, b}, hit)
	assert.Equal(t, 1, space.queries)
	assert.Equal(t, []string{"Enemy"}, space.filters[0])
	assert.Equal(t, 3, Health.Get(a).Current)
	assert.Equal(t, 3, Health.Get(b).Current)

	// Every call is a separate swing.
	m.Resolve(dmath.Vec2{X: 10, Y: 10}, 16, "Enemy")
	assert.Equal(t, 2, space.queries)
	assert.Equal(t, 1, Health.Get(a).Current)
}

func TestMeleeResolveRespectsInvulnerability(t *testing.T) {
	w := donburi.NewWorld()
	target := spawnDamageable(t, w, config.HealthConfig{Max: 5, Invulnerability: time.Second})
	m, err := NewMeleeResolver(&stubSpace{result: []*donburi.Entry{target}}, config.MeleeConfig{Damage: 1})
	require.NoError(t, err)

	assert.Len(t, m.Resolve(dmath.Vec2{}, 8), 1)
	assert.Empty(t, m.Resolve(dmath.Vec2{}, 8))
	assert.Equal(t, 4, Health.Get(target).Current)
}

func TestMeleeResolverEdges(t *testing.T) {
	_, err := NewMeleeResolver(nil, config.MeleeConfig{Damage: -1})
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	m, err := NewMeleeResolver(nil, config.MeleeConfig{Damage: 1})
	require.NoError(t, err)
	assert.Empty(t, m.Resolve(dmath.Vec2{}, 10), "no space means no hits")

	space := &stubSpace{}
	m, err = NewMeleeResolver(space, config.MeleeConfig{Damage: 1})
	require.NoError(t, err)
	assert.Nil(t, m.Resolve(dmath.Vec2{}, -1))
	assert.Equal(t, 0, space.queries)
}
