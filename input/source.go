// Package input produces the per-tick input snapshot when no human is at
// the controls: a built-in autopilot or a tengo script.
package input

import (
	"math"

	"github.com/automoto/cleave/components"
	"github.com/automoto/cleave/spatial"
	"github.com/automoto/cleave/tags"
	"github.com/yohamta/donburi"
)

// Source decides the held actions for the next tick.
type Source interface {
	Next(v View) (components.InputSnapshot, error)
}

// View is what a Source sees of the encounter.
type View struct {
	Tick uint64

	Alive       bool
	PlayerX     float64 // body centre
	PlayerY     float64
	Facing      float64 // -1 or 1
	Grounded    bool
	AttackReady bool
	Health      int
	MaxHealth   int

	// Nearest living enemy, by centre distance.
	HasEnemy  bool
	EnemyX    float64
	EnemyY    float64
	EnemyDist float64
	Enemies   int // living enemies
}

// Observe builds the view of w for the next tick.
func Observe(w donburi.World) View {
	var v View
	if clock := components.ClockOf(w); clock != nil {
		v.Tick = clock.Ticks
	}

	player, ok := tags.Player.First(w)
	if !ok {
		return v
	}
	health := components.Health.Get(player)
	p := components.Player.Get(player)
	center := spatial.Center(components.Object.Get(player).Object)

	v.Alive = health.IsAlive()
	v.PlayerX, v.PlayerY = center.X, center.Y
	v.Facing = float64(p.Facing)
	v.Grounded = components.Physics.Get(player).Grounded()
	v.AttackReady = p.AttackCooldown.Ready()
	v.Health, v.MaxHealth = max(health.Current, 0), health.Max

	v.EnemyDist = math.Inf(1)
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if !components.Health.Get(e).IsAlive() {
			return
		}
		v.Enemies++
		c := spatial.Center(components.Object.Get(e).Object)
		if d := math.Hypot(c.X-center.X, c.Y-center.Y); d < v.EnemyDist {
			v.HasEnemy = true
			v.EnemyX, v.EnemyY, v.EnemyDist = c.X, c.Y, d
		}
	})
	if !v.HasEnemy {
		v.EnemyDist = 0
	}
	return v
}
