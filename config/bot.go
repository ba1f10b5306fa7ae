package config

import "fmt"

// BotDifficulty affects reaction time and decision quality of the autopilot
// that can stand in for the player.
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

var botDifficultyNames = map[string]BotDifficulty{
	"easy":   BotDifficultyEasy,
	"normal": BotDifficultyNormal,
	"hard":   BotDifficultyHard,
}

// ParseBotDifficulty maps "easy", "normal" or "hard" to a difficulty.
func ParseBotDifficulty(name string) (BotDifficulty, error) {
	d, ok := botDifficultyNames[name]
	if !ok {
		return 0, invalid("unknown bot difficulty %q", name)
	}
	return d, nil
}

func (d BotDifficulty) String() string {
	for name, v := range botDifficultyNames {
		if v == d {
			return name
		}
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay    int     // Ticks between an enemy coming into reach and the first swing
	AttackRange      float64 // Horizontal distance to start attacking
	RetreatThreshold float64 // Health % to start retreating
	JumpChance       float64 // Per-tick chance to jump at an enemy standing higher
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
	Seed         int64 // Fixed seed for deterministic replays
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Seed: 42,
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay:    25, // 0.5 second reaction time
				AttackRange:      24.0,
				RetreatThreshold: 0.2, // Retreat at 20% health
				JumpChance:       0.01,
			},
			BotDifficultyNormal: {
				ReactionDelay:    12, // 0.25 second reaction time
				AttackRange:      30.0,
				RetreatThreshold: 0.3, // Retreat at 30% health
				JumpChance:       0.03,
			},
			BotDifficultyHard: {
				ReactionDelay:    3, // Near-instant reaction
				AttackRange:      34.0,
				RetreatThreshold: 0.15, // Retreat at 15% health
				JumpChance:       0.05,
			},
		},
	}
}
