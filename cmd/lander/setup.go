package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/audio"
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/level"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(lvl)
	return logger, nil
}

// fileLogger logs to ~/.lander/lander.log, since the alt screen owns the terminal.
// The returned closer must be called on exit.
func fileLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".lander")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "lander.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "lander")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadConfig reads the lander configuration from the --config search path.
func loadConfig(logger *log.Logger) (config.LanderConfig, error) {
	cfg, src, err := config.Resolve(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if logger != nil {
		logger.Debug("config loaded", "source", src)
	}
	return cfg, nil
}

func newLevelLoader() *level.Loader {
	return level.NewLoader(flagLevels)
}

// requireLevel fails with the available numbers when level n does not load.
func requireLevel(loader *level.Loader, n int) error {
	nums, err := loader.Numbers()
	if err != nil {
		return err
	}
	if !slices.Contains(nums, n) {
		return fmt.Errorf("level %d not found (available: %v)", n, nums)
	}
	return nil
}

// levelInfos lists the loadable levels for menus and tables.
func levelInfos(loader *level.Loader) ([]tui.LevelInfo, error) {
	levels, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	infos := make([]tui.LevelInfo, len(levels))
	for i, l := range levels {
		infos[i] = tui.LevelInfo{Number: l.Number(), Name: l.Name()}
	}
	return infos, nil
}

// openStore opens the run database. A failure is logged and yields nil,
// so the game still runs without records.
func openStore(logger *log.Logger) (tui.RunStore, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "err", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

// gameFactory builds games that share cfg and loader.
func gameFactory(cfg config.LanderConfig, loader *level.Loader) tui.GameFactory {
	return func(n int, sink core.AudioSink, logger *log.Logger) (tui.Game, error) {
		g, err := lander.New(cfg, loader, lander.WithAudio(sink), lander.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := g.Load(n); err != nil {
			return nil, err
		}
		return g, nil
	}
}

// startAudio opens the speaker. Without a device the game stays silent.
func startAudio(cfg config.AudioConfig, logger *log.Logger) (core.AudioSink, func()) {
	if !cfg.Enabled {
		return core.NopAudio{}, func() {}
	}
	p := audio.NewPlayer(cfg, logger)
	if err := p.Start(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return core.NopAudio{}, func() {}
	}
	return p, p.Close
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(cfg config.LanderConfig, startLevel int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = cfg.Physics.TickRate
	rc.Level = startLevel
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	return rc
}

// parseLevelArg reads an optional level argument. Anything that is not a
// positive integer selects level 1.
func parseLevelArg(args []string) int {
	if len(args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lander", "screenshots")
}
