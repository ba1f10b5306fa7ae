package scenes

import (
	"fmt"
	"log"
	"time"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/level"
	"github.com/automoto/cleave/systems"
	"github.com/automoto/cleave/systems/factory"
	"github.com/automoto/cleave/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Outcome is how an encounter ended.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeVictory         // every enemy expired
	OutcomeDefeat          // the player expired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	}
	return "pending"
}

// Encounter is one fight: a world with its systems, a player and enemies.
// It is driven by Tick from a single goroutine.
type Encounter struct {
	ecs       *ecs.ECS
	singleton *donburi.Entry

	// spawn overrides per enemy, reapplied on retune
	overrides map[donburi.Entity]func(*cfg.EnemyTypeConfig)

	enemiesSpawned int
	enemiesExpired int
	outcome        Outcome
	onExpired      []func(components.ExpiredEvent)
}

// NewEncounter creates an empty encounter over a width x height pixel area.
func NewEncounter(width, height int) *Encounter {
	e := &Encounter{
		overrides: make(map[donburi.Entity]func(*cfg.EnemyTypeConfig)),
	}
	e.configure(width, height)
	return e
}

// Load builds an encounter from a map layout.
func Load(layout *level.Layout) (*Encounter, error) {
	width, height := layout.Width, layout.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Sim.SpaceWidth, cfg.Sim.SpaceHeight
	}
	e := NewEncounter(width, height)

	for _, w := range layout.Walls {
		e.AddWall(w.X, w.Y, w.W, w.H)
	}
	if layout.HasPlayer {
		if _, err := e.SpawnPlayer(layout.PlayerSpawn.X, layout.PlayerSpawn.Y); err != nil {
			return nil, fmt.Errorf("load %s: %w", layout.Name, err)
		}
	}
	for _, s := range layout.Enemies {
		if _, err := e.SpawnEnemy(s.X, s.Y, s.Type, s.Apply); err != nil {
			return nil, fmt.Errorf("load %s: %w", layout.Name, err)
		}
	}

	log.Printf("[encounter] Loaded %s: %d walls, %d enemies", layout.Name, len(layout.Walls), len(layout.Enemies))
	return e, nil
}

func (e *Encounter) configure(width, height int) {
	e.ecs = ecs.NewECS(donburi.NewWorld())

	// The schedule drains first so delayed callbacks act on last tick's state.
	e.ecs.AddSystem(systems.UpdateSchedule)
	e.ecs.AddSystem(systems.UpdateInput)

	// Decisions
	e.ecs.AddSystem(systems.UpdatePlayer)
	e.ecs.AddSystem(systems.UpdateEnemies)

	// Movement
	e.ecs.AddSystem(systems.UpdatePhysics)
	e.ecs.AddSystem(systems.UpdateCollisions)
	e.ecs.AddSystem(systems.UpdateObjects)

	// Damage bookkeeping and cleanup
	e.ecs.AddSystem(systems.UpdateHealth)
	e.ecs.AddSystem(systems.UpdateDeaths)
	e.ecs.AddSystem(systems.UpdateEvents)

	e.singleton = factory.CreateEncounter(e.ecs, width, height, cfg.Sim.CellSize)
	components.ExpiredEvents.Subscribe(e.ecs.World, e.handleExpired)
}

// World exposes the underlying world for queries and event subscriptions.
func (e *Encounter) World() donburi.World {
	return e.ecs.World
}

// Now is the simulated time elapsed.
func (e *Encounter) Now() time.Duration {
	return components.Clock.Get(e.singleton).Now
}

// Tick advances the encounter by dt with the given held input.
func (e *Encounter) Tick(dt time.Duration, input components.InputSnapshot) {
	if dt < 0 {
		dt = 0
	}
	components.Clock.Get(e.singleton).Delta = dt
	components.Controls.Get(e.singleton).Snapshot = input
	e.ecs.Update()
}

// OnEntityExpired registers fn to be called once for every entity whose
// death sequence completes, after it has left the world.
func (e *Encounter) OnEntityExpired(fn func(components.ExpiredEvent)) {
	e.onExpired = append(e.onExpired, fn)
}

func (e *Encounter) handleExpired(_ donburi.World, evt components.ExpiredEvent) {
	delete(e.overrides, evt.Entity)
	switch evt.Kind {
	case components.KindPlayer:
		if e.outcome == OutcomePending {
			e.outcome = OutcomeDefeat
		}
	case components.KindEnemy:
		e.enemiesExpired++
		if e.outcome == OutcomePending && e.enemiesExpired >= e.enemiesSpawned {
			e.outcome = OutcomeVictory
		}
	}
	for _, fn := range e.onExpired {
		fn(evt)
	}
}

// Outcome reports whether the fight is over.
func (e *Encounter) Outcome() Outcome {
	return e.outcome
}

// Player returns the player entry, or nil once it has been removed.
func (e *Encounter) Player() *donburi.Entry {
	if p, ok := tags.Player.First(e.ecs.World); ok {
		return p
	}
	return nil
}

// Enemies returns the enemy entries still in the world.
func (e *Encounter) Enemies() []*donburi.Entry {
	var out []*donburi.Entry
	tags.Enemy.Each(e.ecs.World, func(entry *donburi.Entry) {
		out = append(out, entry)
	})
	return out
}

func (e *Encounter) AddWall(x, y, w, h float64) *donburi.Entry {
	return factory.CreateWall(e.ecs, x, y, w, h)
}

// SpawnPlayer adds the player. Enemies spawned earlier pick it up as their
// target on their next tick.
func (e *Encounter) SpawnPlayer(x, y float64) (*donburi.Entry, error) {
	if e.Player() != nil {
		return nil, fmt.Errorf("spawn player: already spawned")
	}
	return factory.CreatePlayer(e.ecs, x, y)
}

// SpawnEnemy adds an enemy of the named type; an empty name uses the
// default type. Each override adjusts the type's values for this enemy only.
func (e *Encounter) SpawnEnemy(x, y float64, typeName string, overrides ...func(*cfg.EnemyTypeConfig)) (*donburi.Entry, error) {
	et, err := cfg.Enemy.Lookup(typeName)
	if err != nil {
		return nil, fmt.Errorf("spawn enemy: %w", err)
	}
	apply := func(et *cfg.EnemyTypeConfig) {
		for _, o := range overrides {
			if o != nil {
				o(et)
			}
		}
	}
	apply(&et)

	enemy, err := factory.CreateEnemy(e.ecs, x, y, et)
	if err != nil {
		return nil, fmt.Errorf("spawn enemy: %w", err)
	}
	e.overrides[enemy.Entity()] = apply
	e.enemiesSpawned++
	return enemy, nil
}

// ApplyTuning makes t the configuration in effect and retunes the live
// player and enemies. Health totals are kept. Nothing changes when t is
// invalid.
func (e *Encounter) ApplyTuning(t cfg.Tuning) error {
	if err := cfg.Apply(t); err != nil {
		return err
	}

	if player := e.Player(); player != nil {
		if err := factory.RetunePlayer(player, cfg.Player); err != nil {
			return err
		}
	}
	for _, enemy := range e.Enemies() {
		data := components.Enemy.Get(enemy)
		et, err := cfg.Enemy.Lookup(data.TypeName)
		if err != nil {
			// A type dropped from the tuning keeps its old values.
			continue
		}
		if apply := e.overrides[enemy.Entity()]; apply != nil {
			apply(&et)
		}
		if err := factory.RetuneEnemy(enemy, et); err != nil {
			return err
		}
	}
	return nil
}
