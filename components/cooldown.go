package components

import "time"

// CooldownData gates an action to at most once per armed duration.
type CooldownData struct {
	Remaining time.Duration
}

// Arm restarts the cooldown. Arming while running replaces the remaining
// time instead of adding to it.
func (c *CooldownData) Arm(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.Remaining = d
}

func (c *CooldownData) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.Remaining -= dt
	if c.Remaining < 0 {
		c.Remaining = 0
	}
}

func (c *CooldownData) Ready() bool {
	return c.Remaining <= 0
}
