package components

import (
	cfg "github.com/automoto/cleave/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this tick
	JustReleased bool // Released this tick
}

// InputSnapshot is the held state of every action for one tick.
type InputSnapshot [cfg.ActionCount]bool

// InputData stores the current and previous tick's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing ticks.
type InputData struct {
	Current  InputSnapshot
	Previous InputSnapshot
}

// Latch makes snapshot the current state and shifts the old one back.
func (in *InputData) Latch(snapshot InputSnapshot) {
	in.Previous = in.Current
	in.Current = snapshot
}

func (in *InputData) Action(id cfg.ActionID) ActionState {
	if id < 0 || id >= cfg.ActionCount {
		return ActionState{}
	}
	cur, prev := in.Current[id], in.Previous[id]
	return ActionState{
		Pressed:      cur,
		JustPressed:  cur && !prev,
		JustReleased: !cur && prev,
	}
}

// Axis returns the horizontal intent. Left wins when both are held.
func (in *InputData) Axis() float64 {
	switch {
	case in.Current[cfg.ActionMoveLeft]:
		return -1
	case in.Current[cfg.ActionMoveRight]:
		return 1
	}
	return 0
}

var Input = donburi.NewComponentType[InputData]()
