// Package tui runs the lander in a terminal with Bubble Tea.
// It owns the frame loop, turns key presses into held controls and renders
// the game's character screen with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per rendered frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
// The game measures the real elapsed time itself, so a late tick only
// produces a larger step.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
