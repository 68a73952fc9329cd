package core

// Cue is a discrete sound request emitted by the game.
type Cue int

const (
	CuePing      Cue = iota // New narrative text
	CueExplosion            // Ship destroyed
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CuePing:
		return "ping"
	case CueExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// AudioSink receives sound requests. Implementations must not block the caller.
type AudioSink interface {
	PlayCue(c Cue)
	// SetThrustVolume sets the continuous engine level in [0, 1].
	SetThrustVolume(v float64)
}

// NopAudio is an AudioSink that discards everything.
type NopAudio struct{}

func (NopAudio) PlayCue(Cue)             {}
func (NopAudio) SetThrustVolume(float64) {}

// DrawKind selects how a polygon is drawn.
type DrawKind int

const (
	DrawFill DrawKind = iota
	DrawStroke
	DrawPoints
)

// DrawItem is one polygon in world space to be drawn.
type DrawItem struct {
	Kind    DrawKind
	Polygon Polygon
	Color   Color
}

// DrawList is an ordered set of draw requests, back to front.
type DrawList []DrawItem
