package systems

import (
	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/spatial"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// attackPoint is the centre of a swing: offset pixels in front of the body
// centre along facing.
func attackPoint(obj *resolv.Object, facing components.Facing, offset float64) dmath.Vec2 {
	c := spatial.Center(obj)
	c.X += float64(facing) * offset
	return c
}

// facingToward turns to face x, keeping the current facing when level.
func facingToward(from, x float64, current components.Facing) components.Facing {
	switch {
	case x < from:
		return components.FacingLeft
	case x > from:
		return components.FacingRight
	}
	return current
}

// setRunning sends the running level only when it changes.
func setRunning(sink components.SignalSink, e donburi.Entity, last *bool, running bool) {
	if *last == running {
		return
	}
	*last = running
	sink.SetBool(e, cfg.SignalRunning, running)
}
