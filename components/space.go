package components

import (
	"time"

	"github.com/automoto/cleave/schedule"
	"github.com/automoto/cleave/spatial"
	"github.com/yohamta/donburi"
)

// ClockData is the simulated time of the encounter.
type ClockData struct {
	Delta time.Duration // length of the current tick
	Now   time.Duration
	Ticks uint64
}

// ControlsData holds the input snapshot handed to the current tick.
type ControlsData struct {
	Snapshot InputSnapshot
}

// The encounter singleton carries these four.
var (
	Space    = donburi.NewComponentType[spatial.Space]()
	Schedule = donburi.NewComponentType[schedule.Queue]()
	Clock    = donburi.NewComponentType[ClockData]()
	Controls = donburi.NewComponentType[ControlsData]()
)

// SpaceOf returns the encounter's collision space, or nil before the
// encounter singleton exists.
func SpaceOf(w donburi.World) *spatial.Space {
	if e, ok := Space.First(w); ok {
		return Space.Get(e)
	}
	return nil
}

// ScheduleOf returns the encounter's callback queue, or nil.
func ScheduleOf(w donburi.World) *schedule.Queue {
	if e, ok := Schedule.First(w); ok {
		return Schedule.Get(e)
	}
	return nil
}

// ClockOf returns the encounter clock, or nil.
func ClockOf(w donburi.World) *ClockData {
	if e, ok := Clock.First(w); ok {
		return Clock.Get(e)
	}
	return nil
}
