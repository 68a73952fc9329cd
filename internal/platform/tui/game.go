package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Game is what the terminal loop drives. *lander.Game implements it.
type Game interface {
	Update(elapsed time.Duration, in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Err() error
}

// GameFactory starts a game at the given level.
type GameFactory func(level int, audio core.AudioSink, logger *log.Logger) (Game, error)

// LevelInfo describes one level for menus and record tables.
type LevelInfo struct {
	Number int
	Name   string
}
