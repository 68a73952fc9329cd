package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator that ends after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000), 7)), //#nosec G404 -- audio noise
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay multiplies a stream by exp(-t/tau) after a linear attack.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	attack   int
	tau      float64
	position int
}

// NewDecay shapes s with a short attack and an exponential tail.
func NewDecay(s beep.Streamer, attack time.Duration, tau time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		rate:     rate,
		attack:   rate.N(attack),
		tau:      tau.Seconds(),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-float64(d.position) / float64(d.rate) / d.tau)
		if d.position < d.attack {
			vol *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// rumble is an endless low-passed noise used for the engine.
type rumble struct {
	rng   *rand.Rand
	state float64
	alpha float64
}

// NewRumble creates an engine noise source with the given cutoff.
func NewRumble(cutoff float64, rate beep.SampleRate) beep.Streamer {
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / float64(rate)
	return &rumble{
		rng:   rand.New(rand.NewPCG(1, 2)), //#nosec G404 -- audio noise
		alpha: dt / (rc + dt),
	}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		noise := r.rng.Float64()*2 - 1
		r.state += r.alpha * (noise - r.state)
		v := r.state * 3
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// setLevel maps a linear level in [0, 1] onto a base-2 volume effect.
// math.Log2(0) is -Inf, so silence is flagged instead.
func setLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(level)
	v.Silent = false
}

// newVolume wraps s at a linear level.
func newVolume(s beep.Streamer, level float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLevel(v, level)
	return v
}

// PingSound is a two-tone chime for new narrative text.
func PingSound(rate beep.SampleRate, level float64) beep.Streamer {
	const length = 400 * time.Millisecond
	fund := NewDecay(NewOscillator(880, length, WaveSine, rate), 5*time.Millisecond, 120*time.Millisecond, rate)
	over := NewDecay(NewOscillator(1320, length, WaveSine, rate), 5*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(beep.Take(rate.N(length), beep.Mix(newVolume(fund, 0.6), newVolume(over, 0.3))), level)
}

// ExplosionSound is a noise burst over a falling low tone.
func ExplosionSound(rate beep.SampleRate, level float64) beep.Streamer {
	const length = 1200 * time.Millisecond
	noise := NewDecay(NewOscillator(0, length, WaveNoise, rate), 2*time.Millisecond, 250*time.Millisecond, rate)
	boom := NewDecay(NewOscillator(55, length, WaveSquare, rate), 2*time.Millisecond, 400*time.Millisecond, rate)
	return newVolume(beep.Take(rate.N(length), beep.Mix(newVolume(noise, 0.7), newVolume(boom, 0.3))), level)
}
