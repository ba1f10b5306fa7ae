package input

import (
	"math"
	"math/rand"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
)

// ChaseSource is the autopilot: walk to the nearest enemy, turn to face it
// and swing whenever the cooldown allows, backing off when badly hurt.
type ChaseSource struct {
	tuning cfg.BotDifficultyConfig
	rng    *rand.Rand

	inReach       int  // consecutive ticks with an enemy in reach
	swungLastTick bool // attack was held last tick; release to make a new edge
}

func NewChaseSource(difficulty cfg.BotDifficulty) *ChaseSource {
	return &ChaseSource{
		tuning: cfg.Bot.Difficulties[difficulty],
		rng:    rand.New(rand.NewSource(cfg.Bot.Seed)),
	}
}

func (c *ChaseSource) Next(v View) (components.InputSnapshot, error) {
	var in components.InputSnapshot
	if !v.Alive || !v.HasEnemy {
		c.inReach = 0
		c.swungLastTick = false
		return in, nil
	}

	dx := v.EnemyX - v.PlayerX
	toward := cfg.ActionMoveRight
	away := cfg.ActionMoveLeft
	if dx < 0 {
		toward, away = away, toward
	}

	healthPercent := float64(v.Health) / float64(max(v.MaxHealth, 1))
	switch {
	case healthPercent < c.tuning.RetreatThreshold && !v.AttackReady:
		// Back off while the swing recharges.
		in[away] = true
		c.inReach = 0
	case math.Abs(dx) > c.tuning.AttackRange:
		in[toward] = true
		c.inReach = 0
	default:
		c.inReach++
		// Turning needs a tick of intent toward the enemy.
		if math.Signbit(dx) != math.Signbit(v.Facing) && dx != 0 {
			in[toward] = true
		}
		if !c.swungLastTick && v.AttackReady && c.inReach > c.tuning.ReactionDelay {
			in[cfg.ActionAttack] = true
		}
	}

	// Hop toward enemies standing on higher ground.
	if v.Grounded && v.EnemyY < v.PlayerY-32 && c.rng.Float64() < c.tuning.JumpChance {
		in[cfg.ActionJump] = true
	}

	c.swungLastTick = in[cfg.ActionAttack]
	return in, nil
}
