package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
)

const rate = beep.SampleRate(44100)

// drain streams s to the end and returns all samples, up to limit.
func drain(s beep.Streamer, limit int) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

func TestOscillatorLengthAndRange(t *testing.T) {
	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"noise", WaveNoise},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, tc.wave, rate)
			samples := drain(osc, 1<<20)

			if len(samples) != rate.N(100*time.Millisecond) {
				t.Errorf("len(samples) = %d, expected %d", len(samples), rate.N(100*time.Millisecond))
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d = %v out of range or not mono", i, s)
				}
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

func TestSquareWaveValues(t *testing.T) {
	samples := drain(NewOscillator(220, 50*time.Millisecond, WaveSquare, rate), 1<<20)
	for i, s := range samples {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("sample %d = %v, expected ±1", i, s[0])
		}
	}
}

func TestDecayFadesOut(t *testing.T) {
	square := NewOscillator(100, 500*time.Millisecond, WaveSquare, rate)
	samples := drain(NewDecay(square, 10*time.Millisecond, 50*time.Millisecond, rate), 1<<20)

	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, expected 0 at the start of the attack", samples[0][0])
	}
	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	early := peak(rate.N(10*time.Millisecond), rate.N(30*time.Millisecond))
	late := peak(rate.N(400*time.Millisecond), rate.N(450*time.Millisecond))
	if late >= early/100 {
		t.Errorf("late peak %v not well below early peak %v", late, early)
	}
}

func TestRumbleNeverEnds(t *testing.T) {
	r := NewRumble(90, rate)
	buf := make([][2]float64, 1024)
	for range 50 {
		n, ok := r.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("Stream() = %d, %v; expected endless stream", n, ok)
		}
	}
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		level  float64
		silent bool
		volume float64
	}{
		{0, true, 0},
		{-1, true, 0},
		{1, false, 0},
		{0.5, false, -1},
		{0.25, false, -2},
	}

	for _, tc := range tests {
		v := &effects.Volume{Base: 2}
		setLevel(v, tc.level)
		if v.Silent != tc.silent || v.Volume != tc.volume {
			t.Errorf("setLevel(%v) = {Silent: %v, Volume: %v}, expected {%v, %v}",
				tc.level, v.Silent, v.Volume, tc.silent, tc.volume)
		}
	}
}

func TestCueSoundsAreFinite(t *testing.T) {
	for name, s := range map[string]beep.Streamer{
		"ping":      PingSound(rate, 1),
		"explosion": ExplosionSound(rate, 1),
	} {
		samples := drain(s, 10*int(rate))
		if len(samples) == 0 || len(samples) >= 10*int(rate) {
			t.Errorf("%s: %d samples, expected a short finite sound", name, len(samples))
		}
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(config.AudioConfig{Enabled: false, MasterVolume: 1}, nil)

	// Disabled audio never opens the device.
	if err := p.Start(); err != nil {
		t.Fatalf("Start() = %v, expected nil when disabled", err)
	}

	p.PlayCue(core.CuePing)
	p.PlayCue(core.CueExplosion)

	p.SetThrustVolume(0.5)
	if p.ThrustVolume() != 0.5 {
		t.Errorf("ThrustVolume() = %v, expected 0.5", p.ThrustVolume())
	}
	if p.engine.Silent || p.engine.Volume != -1 {
		t.Errorf("engine = {Silent: %v, Volume: %v}, expected {false, -1}", p.engine.Silent, p.engine.Volume)
	}

	p.SetThrustVolume(3)
	if p.ThrustVolume() != 1 {
		t.Errorf("ThrustVolume() = %v, expected clamp to 1", p.ThrustVolume())
	}

	p.SetThrustVolume(0)
	if !p.engine.Silent {
		t.Error("engine should be silent at zero thrust")
	}
	p.Close()
}
