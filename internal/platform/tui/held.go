package tui

import (
	"time"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// DefaultHoldWindow is how long an action stays held after its last key event.
// Terminals report repeats, not releases, so a control counts as held while
// its repeats keep arriving.
const DefaultHoldWindow = 180 * time.Millisecond

// opposites release each other on press.
var opposites = map[core.Action]core.Action{
	core.ActionTurnLeft:  core.ActionTurnRight,
	core.ActionTurnRight: core.ActionTurnLeft,
}

// momentary actions are delivered for exactly one frame per key event.
var momentary = map[core.Action]bool{
	core.ActionConfirm: true,
	core.ActionPause:   true,
}

// HeldKeys tracks which controls are currently held.
type HeldKeys struct {
	window time.Duration
	last   map[core.Action]time.Time
	pulses map[core.Action]bool
}

// NewHeldKeys creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{
		window: window,
		last:   make(map[core.Action]time.Time),
		pulses: make(map[core.Action]bool),
	}
}

// Press records a key event for a at time now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if momentary[a] {
		h.pulses[a] = true
		return
	}
	if o, ok := opposites[a]; ok {
		delete(h.last, o)
	}
	h.last[a] = now
}

// Release drops every held action.
func (h *HeldKeys) Release() {
	clear(h.last)
	clear(h.pulses)
}

// Frame returns the actions held at time now plus any momentary presses
// since the previous frame, and forgets expired ones.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, t := range h.last {
		if now.Sub(t) >= h.window {
			delete(h.last, a)
			continue
		}
		f.Set(a)
	}
	for a := range h.pulses {
		f.Set(a)
	}
	clear(h.pulses)
	return f
}
