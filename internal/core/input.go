package core

import (
	"math/bits"
	"strings"
)

// Action represents a semantic control, abstracted from physical key presses.
// The lander consumes "is this control held" booleans; the platform decides
// which keys produce them.
type Action int

const (
	ActionNone      Action = iota
	ActionTurnLeft         // A, Left arrow - rotate counter-clockwise
	ActionTurnRight        // D, Right arrow - rotate clockwise
	ActionThrust           // W, Up arrow, Space - main engine
	ActionConfirm          // Enter - acknowledge the pending message
	ActionPause            // P - pause/unpause
	ActionBack             // Esc - leave the game (SSH sessions)
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionThrust:
		return "Thrust"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of controls held during one rendered frame.
// It is a small value; copies are independent.
type InputFrame struct {
	held uint32
}

// NewInputFrame creates a frame with the given actions held.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as held. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < 32 {
		f.held |= 1 << a
	}
}

// Has reports whether the action is held.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < 32 && f.held&(1<<a) != 0
}

// Clear releases all actions.
func (f *InputFrame) Clear() {
	f.held = 0
}

// Len returns the number of held actions.
func (f InputFrame) Len() int {
	return bits.OnesCount32(f.held)
}

// String lists the held actions, e.g. "[Thrust TurnLeft]".
func (f InputFrame) String() string {
	var names []string
	for a := ActionTurnLeft; a <= ActionQuit; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
