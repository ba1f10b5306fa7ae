package components

import (
	"time"

	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// Overlapper answers circle overlap queries. *spatial.Space implements it.
type Overlapper interface {
	QueryCircle(center dmath.Vec2, radius float64, filter ...string) []*donburi.Entry
}

// SignalSink receives presentation signals. Triggers are one-shot, bools are
// levels.
type SignalSink interface {
	Trigger(e donburi.Entity, name string)
	SetBool(e donburi.Entity, name string, v bool)
}

// Scheduler runs callbacks after a simulated delay. *schedule.Queue
// implements it.
type Scheduler interface {
	ScheduleAfter(owner donburi.Entity, d time.Duration, fn func())
	CancelAll(owner donburi.Entity) int
}

type nopSignals struct{}

func (nopSignals) Trigger(donburi.Entity, string) {}

func (nopSignals) SetBool(donburi.Entity, string, bool) {}

// nopScheduler drops every callback, so a death sequence never completes.
type nopScheduler struct{}

func (nopScheduler) ScheduleAfter(donburi.Entity, time.Duration, func()) {}

func (nopScheduler) CancelAll(donburi.Entity) int { return 0 }

type nopOverlapper struct{}

func (nopOverlapper) QueryCircle(dmath.Vec2, float64, ...string) []*donburi.Entry { return nil }
