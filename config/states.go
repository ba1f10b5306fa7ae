package config

// StateID identifies an enemy agent behaviour state.
type StateID int

const (
	StateNone StateID = iota
	Idle
	Chase
	Attack
	Dead
)

func (s StateID) String() string {
	switch s {
	case Idle:
		return "idle"
	case Chase:
		return "chase"
	case Attack:
		return "attack"
	case Dead:
		return "dead"
	}
	return "none"
}

// Signal names sent to the presentation layer. Triggers fire once, bools
// carry a level that stays set until changed.
const (
	SignalHit      = "hit"
	SignalDeath    = "death"
	SignalAttack   = "attack"
	SignalJump     = "jump"
	SignalRunning  = "running"
	SignalGrounded = "grounded"
	SignalFlash    = "flash"
)
