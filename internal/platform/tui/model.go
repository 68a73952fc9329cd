package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// RunStore persists completed levels.
type RunStore interface {
	SaveRun(level int, ticks uint64, deaths int) (int64, error)
	BestRuns(level, limit int) ([]storage.Run, error)
}

// Options configures a Model.
type Options struct {
	FPS           int            // Frames per second requested from Bubble Tea
	HoldWindow    time.Duration  // See HeldKeys
	ScreenshotDir string         // Empty disables screenshots
	QuitOnBack    bool           // Esc leaves the program instead of returning to a menu
	Audio         core.AudioSink // Handed to games a session starts; nil is silent
	Logger        *log.Logger
	Now           func() time.Time
}

// Model is the Bubble Tea model for one game.
type Model struct {
	game   Game
	screen *core.Screen
	store  RunStore
	opts   Options
	keys   KeyMap
	help   help.Model
	held   *HeldKeys
	logger *log.Logger

	last     time.Time // Time of the previous frame
	state    core.GameState
	saved    bool // Current completion already stored
	quitting bool
	back     bool
}

// NewModel wraps a game that already has its first level loaded.
func NewModel(game Game, store RunStore, cfg core.RuntimeConfig, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = cfg.TickRate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		held:   NewHeldKeys(opts.HoldWindow),
		logger: logger,
		state:  game.State(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		m.held.Release()
		if m.opts.QuitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	default:
		m.held.Press(a, m.opts.Now())
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.back {
		return m, nil
	}

	var elapsed time.Duration
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	res := m.game.Update(elapsed, m.held.Frame(now))
	m.state = res.State
	m.recordCompletion()

	if err := m.game.Err(); err != nil && res.State.Finished {
		m.logger.Error("game stopped", "err", err)
	}
	return m, tickCmd(m.opts.FPS)
}

// recordCompletion stores a finished level once per completion.
func (m *Model) recordCompletion() {
	if !m.state.LevelComplete {
		m.saved = false
		return
	}
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(m.state.Level, uint64(m.state.Ticks), m.state.Deaths); err != nil {
		m.logger.Warn("could not save run", "level", m.state.Level, "err", err)
		return
	}
	m.logger.Info("run saved", "level", m.state.Level, "ticks", m.state.Ticks, "deaths", m.state.Deaths)
}

func (m Model) saveScreenshot() error {
	if m.opts.ScreenshotDir == "" {
		return nil
	}
	m.screen.Clear()
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("level%02d_%s.txt", m.state.Level, m.opts.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(m.opts.ScreenshotDir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game screen and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state after the last frame.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run plays game in the local terminal until the player quits.
func Run(game Game, store RunStore, cfg core.RuntimeConfig, opts Options) error {
	opts.QuitOnBack = true
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.game.Err()
	}
	return nil
}
