package components

import (
	"github.com/automoto/cleave/config"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// MeleeResolver applies one swing worth of damage to whatever overlaps the
// swing circle.
type MeleeResolver struct {
	Damage int
	space  Overlapper
}

// NewMeleeResolver returns a resolver querying space. A nil space makes
// every swing miss.
func NewMeleeResolver(space Overlapper, cfg config.MeleeConfig) (*MeleeResolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if space == nil {
		space = nopOverlapper{}
	}
	return &MeleeResolver{Damage: cfg.Damage, space: space}, nil
}

// Resolve runs a single overlap query around origin restricted to filter and
// deals Damage once to each damageable entry found. It returns the entries
// whose TakeDamage accepted the hit.
func (m *MeleeResolver) Resolve(origin dmath.Vec2, radius float64, filter ...string) []*donburi.Entry {
	if m == nil || radius < 0 {
		return nil
	}
	var hit []*donburi.Entry
	for _, e := range m.space.QueryCircle(origin, radius, filter...) {
		if e == nil || !e.Valid() || !e.HasComponent(Health) {
			continue
		}
		if Health.Get(e).TakeDamage(m.Damage) {
			hit = append(hit, e)
		}
	}
	return hit
}
