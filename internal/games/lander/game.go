// Package lander drives the lunar-lander core: it owns the current level, its
// collision map, the ship and the trigger machine, and advances them frame by
// frame with a fixed-step accumulator.
package lander

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/collision"
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/level"
	"github.com/vovakirdan/tui-lander/internal/ship"
	"github.com/vovakirdan/tui-lander/internal/story"
)

// Prompts the game shows on its own.
const (
	CrashText    = "Your ship was destroyed. Press Enter to try again."
	CompleteText = "Level complete."
)

// LevelSource provides levels by number. *level.Loader implements it.
type LevelSource interface {
	LoadByNumber(n int) (*level.Level, error)
}

// Option configures a Game.
type Option func(*Game)

// WithAudio routes sound cues to sink. A nil sink keeps the game silent.
func WithAudio(sink core.AudioSink) Option {
	return func(g *Game) {
		if sink != nil {
			g.audio = sink
		}
	}
}

// WithLogger sets the game logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// Game is one play session across consecutive levels.
type Game struct {
	cfg    config.LanderConfig
	src    LevelSource
	audio  core.AudioSink
	logger *log.Logger
	script *story.Script
	dt     float64

	visual   []core.Polygon
	collider []core.Polygon

	level *level.Level
	cmap  *collision.Map
	ship  *ship.Ship
	story *story.Machine

	acc         float64 // Unsimulated real time, seconds
	ticks       int     // Fixed ticks on this level
	deaths      int     // Crashes on this level
	completing  bool    // Pending text is a level-complete prompt
	complete    bool
	finished    bool
	userPaused  bool
	confirmHeld bool
	pauseHeld   bool
	err         error
}

// New creates a game. Call Load before the first Update.
func New(cfg config.LanderConfig, src LevelSource, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	script, err := cfg.Story.Script()
	if err != nil {
		return nil, fmt.Errorf("lander: %w", err)
	}
	visual, collider, err := cfg.Ship.Meshes()
	if err != nil {
		return nil, fmt.Errorf("lander: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		src:      src,
		audio:    core.NopAudio{},
		script:   script,
		dt:       cfg.TickDuration(),
		visual:   visual,
		collider: collider,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g, nil
}

// Load makes level n current: it rasterizes the collision map, spawns the
// ship with both capabilities locked and starts a fresh trigger machine.
func (g *Game) Load(n int) error {
	lvl, err := g.src.LoadByNumber(n)
	if err != nil {
		return fmt.Errorf("lander: load level %d: %w", n, err)
	}
	if err := lvl.Validate(); err != nil {
		return fmt.Errorf("lander: level %d: %w", n, err)
	}
	spawn, err := lvl.Spawn()
	if err != nil {
		return fmt.Errorf("lander: level %d: %w", n, err)
	}

	col := g.cfg.Collision
	cmap, err := collision.Build(lvl.Polygons(), col.Extents, col.Width, col.Height,
		collision.WithThreshold(col.Threshold),
		collision.WithLogger(g.logger),
	)
	if err != nil {
		return fmt.Errorf("lander: level %d collision map: %w", n, err)
	}

	g.level = lvl
	g.cmap = cmap
	g.ship = ship.New(g.cfg.ShipParams(), g.visual, g.collider)
	g.ship.Reset(spawn)
	g.ship.DisableControls()
	g.story = story.NewMachine(lvl.Number(), lvl.Triggers(), g.script, g.logger)

	g.acc = 0
	g.ticks = 0
	g.deaths = 0
	g.completing = false
	g.complete = false
	g.userPaused = false

	g.logger.Info("level loaded",
		"level", lvl.Number(),
		"name", lvl.Name(),
		"polygons", len(lvl.Polygons()),
		"triggers", len(lvl.Triggers()),
		"solid_cells", cmap.Count(),
	)
	return nil
}

// advance loads the level after the current one, or finishes the run.
func (g *Game) advance() {
	next := g.level.Number() + 1
	err := g.Load(next)
	switch {
	case err == nil:
	case errors.Is(err, level.ErrNotFound):
		g.finished = true
		g.logger.Info("all levels complete", "last", next-1)
	default:
		g.err = err
		g.finished = true
		g.logger.Error("failed to load next level", "level", next, "err", err)
	}
}

// Err returns a fatal error raised while loading a follow-up level.
func (g *Game) Err() error {
	return g.err
}

// Level returns the current level.
func (g *Game) Level() *level.Level {
	return g.level
}

// Ship returns the player's ship.
func (g *Game) Ship() *ship.Ship {
	return g.ship
}

// Story returns the trigger machine of the current level.
func (g *Game) Story() *story.Machine {
	return g.story
}

// CollisionMap returns the occupancy grid of the current level.
func (g *Game) CollisionMap() *collision.Map {
	return g.cmap
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Ticks:         g.ticks,
		Deaths:        g.deaths,
		LevelComplete: g.complete,
		Finished:      g.finished,
		Paused:        g.userPaused,
	}
	if g.level != nil {
		st.Level = g.level.Number()
	}
	if g.ship != nil {
		st.Alive = g.ship.Alive
	}
	if g.story != nil {
		if text, ok := g.story.Pending(); ok {
			st.Message = text
			st.Paused = true
		}
	}
	return st
}
