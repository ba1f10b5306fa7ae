package components

import (
	"fmt"
	"time"

	"github.com/automoto/cleave/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// HealthHooks are optional callbacks fired by HealthData.
type HealthHooks struct {
	OnDamage func(h *HealthData, amount int)
	OnDeath  func(h *HealthData)
	// OnExpire fires once when the death sequence has finished and the
	// entity should be removed.
	OnExpire func(h *HealthData)
}

// HealthDeps are the collaborators of a HealthData. Any of them may be left
// nil; a nil Scheduler means the death sequence never completes.
type HealthDeps struct {
	Signals   SignalSink
	Scheduler Scheduler
	Hooks     HealthHooks
}

// HealthData is the damage model shared by the player and enemies.
type HealthData struct {
	Owner   donburi.Entity
	Current int
	Max     int

	cfg     config.HealthConfig
	signals SignalSink
	sched   Scheduler
	hooks   HealthHooks

	alive   bool
	expired bool

	invulnerable bool
	invulnLeft   time.Duration

	flashing   bool
	flash      *gween.Tween
	flashLevel float32
}

var Health = donburi.NewComponentType[HealthData]()

// NewHealth builds a full-health HealthData for owner.
func NewHealth(owner donburi.Entity, cfg config.HealthConfig, deps HealthDeps) (*HealthData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &HealthData{
		Owner:   owner,
		Current: cfg.Max,
		Max:     cfg.Max,
		cfg:     cfg,
		signals: deps.Signals,
		sched:   deps.Scheduler,
		hooks:   deps.Hooks,
		alive:   true,
	}
	if h.signals == nil {
		h.signals = nopSignals{}
	}
	if h.sched == nil {
		h.sched = nopScheduler{}
	}
	return h, nil
}

// TakeDamage applies amount unless the entity is dead or invulnerable.
// It reports whether the hit was accepted.
func (h *HealthData) TakeDamage(amount int) bool {
	if h == nil || !h.alive || h.invulnerable || amount <= 0 {
		return false
	}

	h.Current -= amount
	if h.cfg.Invulnerability > 0 {
		h.invulnerable = true
		h.invulnLeft = h.cfg.Invulnerability
	}
	h.startFlash()
	h.signals.Trigger(h.Owner, config.SignalHit)
	if h.hooks.OnDamage != nil {
		h.hooks.OnDamage(h, amount)
	}

	if h.Current <= 0 {
		h.die()
	}
	return true
}

func (h *HealthData) die() {
	h.alive = false
	h.signals.Trigger(h.Owner, config.SignalDeath)
	if h.hooks.OnDeath != nil {
		h.hooks.OnDeath(h)
	}
	h.sched.ScheduleAfter(h.Owner, h.cfg.DeathDelay, h.completeDeath)
}

func (h *HealthData) completeDeath() {
	if h.expired {
		return
	}
	h.expired = true
	if h.hooks.OnExpire != nil {
		h.hooks.OnExpire(h)
	}
}

// Heal restores up to Max. The dead stay dead.
func (h *HealthData) Heal(amount int) {
	if h == nil || !h.alive || amount <= 0 {
		return
	}
	h.Current = min(h.Current+amount, h.Max)
}

// Tick advances the hit flash and the invulnerability window.
func (h *HealthData) Tick(dt time.Duration) {
	if h == nil || dt <= 0 {
		return
	}

	if h.flash != nil {
		level, done := h.flash.Update(float32(dt.Seconds()))
		h.flashLevel = level
		if done {
			h.endFlash()
		}
	}

	if !h.invulnerable {
		return
	}
	h.invulnLeft -= dt
	if h.invulnLeft <= 0 {
		h.invulnLeft = 0
		h.invulnerable = false
		h.endFlash()
	}
}

func (h *HealthData) startFlash() {
	if h.cfg.Flash <= 0 {
		return
	}
	h.flash = gween.New(1, 0, float32(h.cfg.Flash.Seconds()), ease.Linear)
	h.flashLevel = 1
	if !h.flashing {
		h.flashing = true
		h.signals.SetBool(h.Owner, config.SignalFlash, true)
	}
}

func (h *HealthData) endFlash() {
	h.flash = nil
	h.flashLevel = 0
	if h.flashing {
		h.flashing = false
		h.signals.SetBool(h.Owner, config.SignalFlash, false)
	}
}

func (h *HealthData) IsAlive() bool {
	return h != nil && h.alive
}

func (h *HealthData) Invulnerable() bool {
	return h != nil && h.invulnerable
}

// Expired reports whether the death sequence has completed.
func (h *HealthData) Expired() bool {
	return h != nil && h.expired
}

// FlashLevel is the hit flash intensity, 1 right after a hit fading to 0.
func (h *HealthData) FlashLevel() float32 {
	if h == nil {
		return 0
	}
	return h.flashLevel
}

// Label formats health the way the HUD shows it, e.g. "7 / 10".
func (h *HealthData) Label() string {
	return fmt.Sprintf("%d / %d", max(h.Current, 0), h.Max)
}

// Retune swaps the timing windows used by future hits. Current and Max are
// left alone.
func (h *HealthData) Retune(cfg config.HealthConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Max = h.Max
	h.cfg = cfg
	return nil
}
