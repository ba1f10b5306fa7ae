package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionMoveLeft ActionID = iota
	ActionMoveRight
	ActionJump
	ActionAttack
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveLeft:  "left",
	ActionMoveRight: "right",
	ActionJump:      "jump",
	ActionAttack:    "attack",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}
