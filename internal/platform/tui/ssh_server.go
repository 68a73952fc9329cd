package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.lander/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FPS and TickRate are passed to every session.
	FPS      int
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		FPS:         30,
		TickRate:    60,
	}
}

// SSHServer serves the lander over SSH with Wish.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	factory GameFactory
	levels  []LevelInfo
	store   RunStore
	logger  *log.Logger
}

// NewSSHServer creates a server. Sessions have no sound; store may be nil.
func NewSSHServer(cfg SSHServerConfig, factory GameFactory, levels []LevelInfo, store RunStore, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := &SSHServer{
		config:  cfg,
		factory: factory,
		levels:  levels,
		store:   store,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".lander", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Level:    1,
	}
	logger := s.logger.With("user", sess.User())
	model := NewSessionModel(s.factory, s.levels, s.store, cfg, Options{FPS: s.config.FPS, Logger: logger})

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeRecords
	modeGame
)

// SessionModel manages the full session flow: menu -> game or records -> menu.
type SessionModel struct {
	factory GameFactory
	levels  []LevelInfo
	store   RunStore
	config  core.RuntimeConfig
	opts    Options
	mode    sessionMode
	menu    MenuModel
	records RecordsModel
	game    Model
	status  string // Last error shown under the menu
	quit    bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(factory GameFactory, levels []LevelInfo, store RunStore, cfg core.RuntimeConfig, opts Options) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		factory: factory,
		levels:  levels,
		store:   store,
		config:  cfg,
		opts:    opts,
		menu:    NewMenuModel(levels, store, cfg.TickRate, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quit = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		m.records = NewRecordsModel(m.store, m.levels, m.menu.Cursor(), m.config.TickRate, m.config.ScreenW, m.config.ScreenH)
		m.mode = modeRecords
		return m, m.records.Init()

	case m.menu.Selected() != 0:
		n := m.menu.Selected()
		var audio core.AudioSink = core.NopAudio{}
		if m.opts.Audio != nil {
			audio = m.opts.Audio
		}
		game, err := m.factory(n, audio, m.opts.Logger)
		if err != nil {
			m.opts.Logger.Error("cannot start level", "level", n, "err", err)
			m.status = err.Error()
			m.resetMenu()
			return m, nil
		}
		m.status = ""
		m.game = NewModel(game, m.store, m.config, m.opts)
		m.mode = modeGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	m.records = next.(RecordsModel)

	switch {
	case m.records.IsQuitting():
		m.quit = true
		return m, tea.Quit
	case m.records.IsGoingBack():
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	switch {
	case m.game.IsQuitting():
		m.quit = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

// resetMenu rebuilds the menu so best times are fresh.
func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.levels, m.store, m.config.TickRate, m.config.ScreenW, m.config.ScreenH)
	m.mode = modeMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quit {
		return ""
	}
	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeRecords:
		return m.records.View()
	}
	if m.status != "" {
		return m.menu.View() + "\n" + centerText(colorStyles[core.ColorBrightRed].Render(m.status), m.config.ScreenW)
	}
	return m.menu.View()
}

// Mode reports which screen is active, for tests.
func (m SessionModel) Mode() string {
	switch m.mode {
	case modeGame:
		return "game"
	case modeRecords:
		return "records"
	}
	return "menu"
}
