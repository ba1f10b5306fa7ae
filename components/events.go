package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Kind names the role of a combatant in events.
type Kind string

const (
	KindPlayer Kind = "player"
	KindEnemy  Kind = "enemy"
)

// KindOf reports whether entry is the player or an enemy.
func KindOf(entry *donburi.Entry) Kind {
	if entry != nil && entry.Valid() && entry.HasComponent(Player) {
		return KindPlayer
	}
	return KindEnemy
}

// SignalEvent is a presentation signal. Trigger signals are one-shot; the
// rest carry Value as a level.
type SignalEvent struct {
	Entity  donburi.Entity
	Name    string
	Trigger bool
	Value   bool
}

type DamageEvent struct {
	Entity  donburi.Entity
	Kind    Kind
	Amount  int
	Current int
	Max     int
	Label   string
}

type DeathEvent struct {
	Entity donburi.Entity
	Kind   Kind
}

// ExpiredEvent is published once an entity's death sequence has completed
// and it has been removed from the world.
type ExpiredEvent struct {
	Entity   donburi.Entity
	Kind     Kind
	TypeName string
}

var (
	SignalEvents  = events.NewEventType[SignalEvent]()
	DamageEvents  = events.NewEventType[DamageEvent]()
	DeathEvents   = events.NewEventType[DeathEvent]()
	ExpiredEvents = events.NewEventType[ExpiredEvent]()
)

// EventSink is the SignalSink that publishes SignalEvents into a world.
// Events are delivered when the world's events are processed at the end of
// the tick.
type EventSink struct {
	world donburi.World
}

func NewEventSink(w donburi.World) *EventSink {
	return &EventSink{world: w}
}

func (s *EventSink) Trigger(e donburi.Entity, name string) {
	SignalEvents.Publish(s.world, SignalEvent{Entity: e, Name: name, Trigger: true})
}

func (s *EventSink) SetBool(e donburi.Entity, name string, v bool) {
	SignalEvents.Publish(s.world, SignalEvent{Entity: e, Name: name, Value: v})
}
