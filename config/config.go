package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only ECS layer. The encounter runs headless so no draw
// ordering is needed.
const Default ecs.LayerID = 0

// ErrInvalidConfig is wrapped by every Validate error.
var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}

// MinAttackRate keeps AttackInterval within time.Duration.
const MinAttackRate = 0.001

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonNegative is false for NaN and infinities as well as negatives.
func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

// HealthConfig contains the damage model of a damageable entity.
type HealthConfig struct {
	Max int `yaml:"max"`

	// Invulnerability starts on every accepted hit. Flash is the visual hit
	// window; it is reverted when invulnerability ends even if shorter.
	Invulnerability time.Duration `yaml:"invulnerability"`
	Flash           time.Duration `yaml:"flash"`

	// DeathDelay is how long the death sequence plays before the entity is
	// marked for removal.
	DeathDelay time.Duration `yaml:"death_delay"`
}

func (c HealthConfig) Validate() error {
	if c.Max <= 0 {
		return invalid("health max %d must be positive", c.Max)
	}
	if c.Invulnerability < 0 {
		return invalid("invulnerability %s is negative", c.Invulnerability)
	}
	if c.Flash < 0 {
		return invalid("flash %s is negative", c.Flash)
	}
	if c.DeathDelay < 0 {
		return invalid("death delay %s is negative", c.DeathDelay)
	}
	return nil
}

// MeleeConfig is the damage applied by one swing.
type MeleeConfig struct {
	Damage int `yaml:"damage"`
}

func (c MeleeConfig) Validate() error {
	if c.Damage < 0 {
		return invalid("melee damage %d is negative", c.Damage)
	}
	return nil
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement, in pixels per second. Y grows downward.
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`

	// Combat
	Health       HealthConfig `yaml:"health"`
	Melee        MeleeConfig  `yaml:"melee"`
	AttackRate   float64      `yaml:"attack_rate"` // swings per second
	AttackRadius float64      `yaml:"attack_radius"`
	AttackOffset float64      `yaml:"attack_offset"` // attack point distance in front of the body centre

	// Dimensions
	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`
}

// AttackInterval is the cooldown armed after each swing.
func (c PlayerConfig) AttackInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.AttackRate)
}

func (c PlayerConfig) Validate() error {
	if err := c.Health.Validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if err := c.Melee.Validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if !finite(c.AttackRate) || c.AttackRate < MinAttackRate {
		return invalid("player attack rate %v must be at least %v", c.AttackRate, MinAttackRate)
	}
	if !nonNegative(c.AttackRadius) {
		return invalid("player attack radius %v must be a finite non-negative number", c.AttackRadius)
	}
	if !finite(c.AttackOffset) {
		return invalid("player attack offset %v is not finite", c.AttackOffset)
	}
	if !nonNegative(c.MoveSpeed) || !nonNegative(c.JumpSpeed) {
		return invalid("player speeds %v/%v must be finite and non-negative", c.MoveSpeed, c.JumpSpeed)
	}
	if !positive(c.CollisionWidth) || !positive(c.CollisionHeight) {
		return invalid("player collision box %vx%v", c.CollisionWidth, c.CollisionHeight)
	}
	return nil
}

// EnemyTypeConfig contains configuration for specific enemy types
type EnemyTypeConfig struct {
	Name   string       `yaml:"-"`
	Health HealthConfig `yaml:"health"`
	Melee  MeleeConfig  `yaml:"melee"`

	MoveSpeed      float64 `yaml:"move_speed"`
	DetectionRange float64 `yaml:"detection_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AlwaysChase    bool    `yaml:"always_chase"`

	AttackCooldown time.Duration `yaml:"attack_cooldown"`
	AttackWindup   time.Duration `yaml:"attack_windup"` // delay between the swing starting and the hit landing
	AttackRadius   float64       `yaml:"attack_radius"`
	AttackOffset   float64       `yaml:"attack_offset"`

	// GroundBias is the downward speed kept while grounded so slopes and
	// ledges don't unseat the agent.
	GroundBias float64 `yaml:"ground_bias"`

	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`
}

func (c EnemyTypeConfig) Validate() error {
	if err := c.Health.Validate(); err != nil {
		return fmt.Errorf("enemy %q: %w", c.Name, err)
	}
	if err := c.Melee.Validate(); err != nil {
		return fmt.Errorf("enemy %q: %w", c.Name, err)
	}
	switch {
	case !nonNegative(c.MoveSpeed):
		return invalid("enemy %q move speed %v must be finite and non-negative", c.Name, c.MoveSpeed)
	case !nonNegative(c.DetectionRange):
		return invalid("enemy %q detection range %v must be finite and non-negative", c.Name, c.DetectionRange)
	case !nonNegative(c.AttackRange):
		return invalid("enemy %q attack range %v must be finite and non-negative", c.Name, c.AttackRange)
	case !nonNegative(c.AttackRadius):
		return invalid("enemy %q attack radius %v must be finite and non-negative", c.Name, c.AttackRadius)
	case !finite(c.AttackOffset):
		return invalid("enemy %q attack offset %v is not finite", c.Name, c.AttackOffset)
	case c.AttackCooldown < 0:
		return invalid("enemy %q attack cooldown %s is negative", c.Name, c.AttackCooldown)
	case c.AttackWindup < 0:
		return invalid("enemy %q attack windup %s is negative", c.Name, c.AttackWindup)
	case !nonNegative(c.GroundBias):
		return invalid("enemy %q ground bias %v must be finite and non-negative", c.Name, c.GroundBias)
	case !positive(c.CollisionWidth) || !positive(c.CollisionHeight):
		return invalid("enemy %q collision box %vx%v", c.Name, c.CollisionWidth, c.CollisionHeight)
	}
	return nil
}

// EnemyConfig contains all enemy type definitions
type EnemyConfig struct {
	Types       map[string]EnemyTypeConfig
	DefaultType string
}

// Lookup returns the named type, falling back to DefaultType for an empty name.
func (c EnemyConfig) Lookup(name string) (EnemyTypeConfig, error) {
	if name == "" {
		name = c.DefaultType
	}
	t, ok := c.Types[name]
	if !ok {
		return EnemyTypeConfig{}, invalid("unknown enemy type %q", name)
	}
	t.Name = name
	return t, nil
}

func (c EnemyConfig) Validate() error {
	if _, ok := c.Types[c.DefaultType]; !ok {
		return invalid("default enemy type %q is not defined", c.DefaultType)
	}
	for name, t := range c.Types {
		t.Name = name
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PhysicsConfig contains world physics values
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // pixels per second squared
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // pixels per second
	GroundProbe  float64 `yaml:"ground_probe"`   // distance below the feet that still counts as grounded
}

func (c PhysicsConfig) Validate() error {
	if !nonNegative(c.Gravity) || !positive(c.MaxFallSpeed) || !positive(c.GroundProbe) {
		return invalid("physics gravity %v fall %v probe %v", c.Gravity, c.MaxFallSpeed, c.GroundProbe)
	}
	return nil
}

// SimConfig contains fixed-step simulation values
type SimConfig struct {
	TickRate    int
	SpaceWidth  int
	SpaceHeight int
	CellSize    int
}

// TickDelta is the simulated time of one tick.
func (c SimConfig) TickDelta() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Global configuration instances
var Player PlayerConfig
var Enemy EnemyConfig
var Physics PhysicsConfig
var Sim SimConfig

func init() {
	// Distances are in pixels at 32 pixels per tile.
	Player = PlayerConfig{
		MoveSpeed: 160,
		JumpSpeed: 384,
		Health: HealthConfig{
			Max:             10,
			Invulnerability: 500 * time.Millisecond,
			Flash:           500 * time.Millisecond,
			DeathDelay:      1500 * time.Millisecond,
		},
		Melee:           MeleeConfig{Damage: 1},
		AttackRate:      1,
		AttackRadius:    16,
		AttackOffset:    20,
		CollisionWidth:  16,
		CollisionHeight: 40,
	}

	Enemy = EnemyConfig{
		DefaultType: "demon",
		Types: map[string]EnemyTypeConfig{
			"demon": {
				Health: HealthConfig{
					Max:             3,
					Invulnerability: time.Second,
					Flash:           500 * time.Millisecond,
					DeathDelay:      time.Second,
				},
				Melee:           MeleeConfig{Damage: 1},
				MoveSpeed:       96,
				DetectionRange:  300,
				AttackRange:     64,
				AlwaysChase:     true,
				AttackCooldown:  2 * time.Second,
				AttackWindup:    time.Second,
				AttackRadius:    48,
				AttackOffset:    19,
				GroundBias:      160,
				CollisionWidth:  24,
				CollisionHeight: 40,
			},
			"brute": {
				Health: HealthConfig{
					Max:             6,
					Invulnerability: time.Second,
					Flash:           500 * time.Millisecond,
					DeathDelay:      1500 * time.Millisecond,
				},
				Melee:           MeleeConfig{Damage: 2},
				MoveSpeed:       64,
				DetectionRange:  240,
				AttackRange:     72,
				AlwaysChase:     false,
				AttackCooldown:  3 * time.Second,
				AttackWindup:    1500 * time.Millisecond,
				AttackRadius:    56,
				AttackOffset:    24,
				GroundBias:      160,
				CollisionWidth:  32,
				CollisionHeight: 48,
			},
			"imp": {
				Health: HealthConfig{
					Max:             1,
					Invulnerability: 250 * time.Millisecond,
					Flash:           250 * time.Millisecond,
					DeathDelay:      500 * time.Millisecond,
				},
				Melee:           MeleeConfig{Damage: 1},
				MoveSpeed:       144,
				DetectionRange:  360,
				AttackRange:     40,
				AlwaysChase:     false,
				AttackCooldown:  time.Second,
				AttackWindup:    400 * time.Millisecond,
				AttackRadius:    28,
				AttackOffset:    12,
				GroundBias:      160,
				CollisionWidth:  16,
				CollisionHeight: 24,
			},
		},
	}

	Physics = PhysicsConfig{
		Gravity:      940,
		MaxFallSpeed: 640,
		GroundProbe:  2,
	}

	Sim = SimConfig{
		TickRate:    50,
		SpaceWidth:  4096,
		SpaceHeight: 1024,
		CellSize:    16,
	}
}
