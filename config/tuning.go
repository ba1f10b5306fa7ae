package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the overridable subset of the configuration. A tuning file only
// needs to name the values it changes:
//
//	player:
//	  move_speed: 180
//	  health:
//	    invulnerability: 750ms
//	enemies:
//	  demon:
//	    attack_cooldown: 1.5s
type Tuning struct {
	Player  PlayerConfig               `yaml:"player"`
	Enemies map[string]EnemyTypeConfig `yaml:"enemies"`
	Physics PhysicsConfig              `yaml:"physics"`
}

// Snapshot returns the configuration currently in effect.
func Snapshot() Tuning {
	enemies := make(map[string]EnemyTypeConfig, len(Enemy.Types))
	for name, t := range Enemy.Types {
		enemies[name] = t
	}
	return Tuning{Player: Player, Enemies: enemies, Physics: Physics}
}

// ParseTuning decodes data on top of the current configuration. Enemy types
// missing from the document keep their values, new names add a type.
func ParseTuning(data []byte) (Tuning, error) {
	var doc struct {
		Player  yaml.Node            `yaml:"player"`
		Enemies map[string]yaml.Node `yaml:"enemies"`
		Physics yaml.Node            `yaml:"physics"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}

	t := Snapshot()
	if !doc.Player.IsZero() {
		if err := doc.Player.Decode(&t.Player); err != nil {
			return Tuning{}, fmt.Errorf("parse tuning player: %w", err)
		}
	}
	if !doc.Physics.IsZero() {
		if err := doc.Physics.Decode(&t.Physics); err != nil {
			return Tuning{}, fmt.Errorf("parse tuning physics: %w", err)
		}
	}
	for name, node := range doc.Enemies {
		et := t.Enemies[name]
		if err := node.Decode(&et); err != nil {
			return Tuning{}, fmt.Errorf("parse tuning enemy %q: %w", name, err)
		}
		t.Enemies[name] = et
	}
	return t, nil
}

// LoadTuningFile reads and parses a tuning file.
func LoadTuningFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate checks every section without applying anything.
func (t Tuning) Validate() error {
	if err := t.Player.Validate(); err != nil {
		return err
	}
	if err := t.Physics.Validate(); err != nil {
		return err
	}
	return EnemyConfig{Types: t.Enemies, DefaultType: Enemy.DefaultType}.Validate()
}

// Apply validates t and makes it the configuration in effect. Nothing is
// changed when validation fails.
func Apply(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	Player = t.Player
	Physics = t.Physics
	types := make(map[string]EnemyTypeConfig, len(t.Enemies))
	for name, et := range t.Enemies {
		et.Name = name
		types[name] = et
	}
	Enemy.Types = types
	return nil
}

// Marshal encodes t as a complete tuning document.
func (t Tuning) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode tuning: %w", err)
	}
	return data, nil
}
