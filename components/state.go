package components

import (
	"time"

	"github.com/automoto/cleave/config"
	"github.com/yohamta/donburi"
)

type StateData struct {
	CurrentState  config.StateID
	PreviousState config.StateID
	StateTimer    time.Duration // time spent in CurrentState
}

// Enter switches state and restarts the timer. Re-entering the current
// state is a no-op so the timer keeps running.
func (s *StateData) Enter(next config.StateID) bool {
	if s.CurrentState == next {
		return false
	}
	s.PreviousState = s.CurrentState
	s.CurrentState = next
	s.StateTimer = 0
	return true
}

var State = donburi.NewComponentType[StateData]()
