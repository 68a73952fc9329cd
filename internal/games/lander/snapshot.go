package lander

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/tui-lander/internal/ship"
)

// Snapshot contains the complete simulation state for replay and
// determinism checks.
type Snapshot struct {
	Level      int
	Ticks      int
	Deaths     int
	Ship       ship.Snapshot
	Fired      []uint32 // ascending
	Message    string
	Pending    bool
	Completing bool
	Finished   bool
	Acc        float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Ticks:      g.ticks,
		Deaths:     g.deaths,
		Completing: g.completing,
		Finished:   g.finished,
		Acc:        g.acc,
	}
	if g.level != nil {
		snap.Level = g.level.Number()
	}
	if g.ship != nil {
		snap.Ship = g.ship.Snapshot()
	}
	if g.story != nil {
		snap.Fired = g.story.FiredIDs()
		snap.Message, snap.Pending = g.story.Pending()
	}
	return snap
}

// Hash returns a hash of the snapshot for determinism testing.
// Floats are hashed by their exact bit patterns.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf []byte

	putInt := func(v int) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v)) //#nosec G115 -- hash computation
	}
	putFloat := func(v float64) {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	putBool := func(v bool) {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	putInt(snap.Level)
	putInt(snap.Ticks)
	putInt(snap.Deaths)

	s := snap.Ship
	for _, f := range []float64{s.X, s.Y, s.VX, s.VY, s.Angle, s.AngularVelocity, s.Thrust, s.DeadTime} {
		putFloat(f)
	}
	putBool(s.Alive)
	putBool(s.TurningEnabled)
	putBool(s.ThrustEnabled)

	putInt(len(snap.Fired))
	for _, id := range snap.Fired {
		buf = binary.LittleEndian.AppendUint32(buf, id)
	}
	buf = append(buf, snap.Message...)
	putBool(snap.Pending)
	putBool(snap.Completing)
	putBool(snap.Finished)
	putFloat(snap.Acc)

	h.Write(buf) //nolint:errcheck // hash.Hash never returns an error
	return h.Sum64()
}
