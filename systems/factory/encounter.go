package factory

import (
	"github.com/automoto/cleave/archetypes"
	"github.com/automoto/cleave/components"
	"github.com/automoto/cleave/schedule"
	"github.com/automoto/cleave/spatial"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateEncounter spawns the singleton holding the collision space, the
// delayed callback queue, the clock and the tick's input snapshot. It must
// exist before any combatant is created.
func CreateEncounter(ecs *ecs.ECS, width, height, cellSize int) *donburi.Entry {
	encounter := archetypes.Encounter.Spawn(ecs)
	components.Space.Set(encounter, spatial.NewSpace(width, height, cellSize))
	components.Schedule.Set(encounter, schedule.NewQueue())
	components.Clock.SetValue(encounter, components.ClockData{})
	components.Controls.SetValue(encounter, components.ControlsData{})
	return encounter
}

// healthDeps wires a HealthData to the encounter: signals and damage/death
// events go out through the world, the death sequence runs on the queue.
func healthDeps(w donburi.World, kind components.Kind) components.HealthDeps {
	deps := components.HealthDeps{
		Signals: components.NewEventSink(w),
		Hooks: components.HealthHooks{
			OnDamage: func(h *components.HealthData, amount int) {
				components.DamageEvents.Publish(w, components.DamageEvent{
					Entity:  h.Owner,
					Kind:    kind,
					Amount:  amount,
					Current: h.Current,
					Max:     h.Max,
					Label:   h.Label(),
				})
			},
			OnDeath: func(h *components.HealthData) {
				components.DeathEvents.Publish(w, components.DeathEvent{Entity: h.Owner, Kind: kind})
			},
		},
	}
	if q := components.ScheduleOf(w); q != nil {
		deps.Scheduler = q
	}
	return deps
}

// overlapper avoids handing out a typed nil.
func overlapper(w donburi.World) components.Overlapper {
	if s := components.SpaceOf(w); s != nil {
		return s
	}
	return nil
}
