// Package audio plays the lander's sound cues through the system speaker.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
)

// Player implements core.AudioSink with beep.
// Until Start succeeds every call is a no-op, so the game runs without sound.
type Player struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	rate    beep.SampleRate
	mixer   *beep.Mixer
	engine  *effects.Volume
	level   float64 // last engine level requested
	started bool
	logger  *log.Logger
}

var _ core.AudioSink = (*Player)(nil)

// NewPlayer creates a player. Call Start to open the audio device.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	p := &Player{
		cfg:    cfg,
		rate:   rate,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	p.engine = newVolume(NewRumble(90, rate), 0)
	p.mixer.Add(p.engine)
	return p
}

// Start opens the speaker and begins mixing.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || !p.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	p.logger.Debug("audio started", "rate", int(p.rate))
	return nil
}

// Close stops all sound and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

// PlayCue starts a one-shot sound.
func (p *Player) PlayCue(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	var s beep.Streamer
	switch c {
	case core.CuePing:
		s = PingSound(p.rate, p.cfg.MasterVolume)
	case core.CueExplosion:
		s = ExplosionSound(p.rate, p.cfg.MasterVolume)
	default:
		p.logger.Warn("unknown audio cue", "cue", int(c))
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetThrustVolume sets the engine level in [0, 1].
func (p *Player) SetThrustVolume(v float64) {
	v = core.ClampF(v, 0, 1)

	p.mu.Lock()
	defer p.mu.Unlock()

	if v == p.level {
		return
	}
	p.level = v
	if !p.started {
		setLevel(p.engine, v*p.cfg.MasterVolume)
		return
	}

	speaker.Lock()
	setLevel(p.engine, v*p.cfg.MasterVolume)
	speaker.Unlock()
}

// ThrustVolume returns the last engine level set.
func (p *Player) ThrustVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}
