package session

import "fmt"

// State says what the next row pick means.
type State int

const (
	StateInit State = iota
	StateTHzReady
	StateSeekExciFirst
	StateSeekSponFirst
	StateSeekExci
	StateSeekSpon
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateTHzReady:
		return "thz-ready"
	case StateSeekExciFirst:
		return "seek-exci-0"
	case StateSeekSponFirst:
		return "seek-spon-0"
	case StateSeekExci:
		return "seek-exci"
	case StateSeekSpon:
		return "seek-spon"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action is a user-initiated request to open a path-exploration table.
type Action int

const (
	ActionSelectExcitation Action = iota
	ActionAddExcitation
	ActionSelectFluorescence
	ActionAddFluorescence
)

var actionLabels = map[Action]string{
	ActionSelectExcitation:   "Select excitation path(s)...",
	ActionAddExcitation:      "Add excitation step...",
	ActionSelectFluorescence: "Select fluorescence transition...",
	ActionAddFluorescence:    "Add fluorescence step...",
}

func (a Action) String() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// target is the state an action enters.
func (a Action) target() State {
	switch a {
	case ActionSelectExcitation:
		return StateSeekExciFirst
	case ActionAddExcitation:
		return StateSeekExci
	case ActionSelectFluorescence:
		return StateSeekSponFirst
	default:
		return StateSeekSpon
	}
}

// Actions lists every action in display order.
func Actions() []Action {
	return []Action{ActionSelectExcitation, ActionAddExcitation, ActionSelectFluorescence, ActionAddFluorescence}
}
