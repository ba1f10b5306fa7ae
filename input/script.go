package input

import (
	"fmt"
	"log"
	"os"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptOutputs are the globals a script sets to hold an action for the
// next tick. They are reset to false before every run.
var scriptOutputs = [cfg.ActionCount]string{
	cfg.ActionMoveLeft:  "left",
	cfg.ActionMoveRight: "right",
	cfg.ActionJump:      "jump",
	cfg.ActionAttack:    "attack",
}

// ScriptSource runs a tengo script once per tick. The script reads the
// `view` map (same fields as View, snake_case), keeps anything it likes in
// the `state` map between ticks, and sets any of left, right, jump and
// attack to true:
//
//	if view.has_enemy && view.enemy_x > view.player_x { right = true }
//	attack = view.enemy_dist < 40 && view.attack_ready && view.tick % 2 == 0
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadScript compiles the script at path.
func LoadScript(path string) (*ScriptSource, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return NewScriptSource(path, src)
}

// NewScriptSource compiles src; name is used in errors.
func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	_ = script.Add("view", map[string]any{})
	_ = script.Add("state", map[string]any{})
	for _, out := range scriptOutputs {
		_ = script.Add(out, false)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", name, err)
	}
	log.Printf("[script] Loaded %s", name)
	return &ScriptSource{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *ScriptSource) Next(v View) (components.InputSnapshot, error) {
	var in components.InputSnapshot

	if err := s.compiled.Set("view", viewMap(v)); err != nil {
		return in, fmt.Errorf("script %s: %w", s.name, err)
	}
	if err := s.compiled.Set("state", s.state); err != nil {
		return in, fmt.Errorf("script %s: %w", s.name, err)
	}
	for _, out := range scriptOutputs {
		if err := s.compiled.Set(out, false); err != nil {
			return in, fmt.Errorf("script %s: %w", s.name, err)
		}
	}

	if err := s.compiled.Run(); err != nil {
		return in, fmt.Errorf("script %s: %w", s.name, err)
	}

	for action, out := range scriptOutputs {
		in[action] = s.compiled.Get(out).Bool()
	}
	return in, nil
}

func viewMap(v View) map[string]any {
	return map[string]any{
		"tick":         int64(v.Tick),
		"alive":        v.Alive,
		"player_x":     v.PlayerX,
		"player_y":     v.PlayerY,
		"facing":       v.Facing,
		"grounded":     v.Grounded,
		"attack_ready": v.AttackReady,
		"health":       v.Health,
		"max_health":   v.MaxHealth,
		"has_enemy":    v.HasEnemy,
		"enemy_x":      v.EnemyX,
		"enemy_y":      v.EnemyY,
		"enemy_dist":   v.EnemyDist,
		"enemies":      v.Enemies,
	}
}
