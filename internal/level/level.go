// Package level holds the polygon geometry and trigger volumes of a level.
// A Level is immutable once built; runtime state lives elsewhere.
package level

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// SpawnID is the reserved trigger whose center is the ship's spawn point.
const SpawnID uint32 = 0

var (
	// ErrNoSpawn is returned when a level has no trigger 0.
	ErrNoSpawn = errors.New("level: spawn trigger 0 is missing")

	// ErrNotFound is returned when no level has the requested number.
	ErrNotFound = errors.New("level: not found")
)

// ContentError describes an authoring mistake in a level asset.
type ContentError struct {
	Code    string
	Message string
}

func (e ContentError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrNoSpawn) match the NO_SPAWN content error.
func (e ContentError) Is(target error) bool {
	return target == ErrNoSpawn && e.Code == "NO_SPAWN"
}

// Trigger is an axis-aligned rectangle in world space.
type Trigger struct {
	ID   uint32
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Bounds returns the trigger rectangle.
func (t Trigger) Bounds() core.Bounds {
	return core.Bounds{MinX: t.MinX, MaxX: t.MaxX, MinY: t.MinY, MaxY: t.MaxY}
}

// Center returns the center of the trigger rectangle.
func (t Trigger) Center() core.Vec2 {
	return t.Bounds().Center()
}

// Contains reports whether p is inside the trigger (min <= p < max).
func (t Trigger) Contains(p core.Vec2) bool {
	return t.Bounds().Contains(p)
}

// Level owns the polygons and triggers of one authored level.
type Level struct {
	number   int
	name     string
	polygons []core.Polygon
	triggers map[uint32]Trigger
}

// New builds a level, rejecting malformed content.
// The spawn trigger is checked separately by Validate so that tools can
// still inspect a level that lacks one.
func New(number int, name string, polygons []core.Polygon, triggers []Trigger) (*Level, error) {
	l := &Level{
		number:   number,
		name:     name,
		polygons: make([]core.Polygon, 0, len(polygons)),
		triggers: make(map[uint32]Trigger, len(triggers)),
	}

	for i, p := range polygons {
		if len(p) < 3 {
			return nil, ContentError{
				Code:    "BAD_POLYGON",
				Message: fmt.Sprintf("polygon %d has %d points, need at least 3", i, len(p)),
			}
		}
		l.polygons = append(l.polygons, append(core.Polygon(nil), p...))
	}

	for _, t := range triggers {
		if _, dup := l.triggers[t.ID]; dup {
			return nil, ContentError{
				Code:    "DUP_TRIGGER",
				Message: fmt.Sprintf("trigger %d defined more than once", t.ID),
			}
		}
		if !t.Bounds().Valid() {
			return nil, ContentError{
				Code:    "BAD_TRIGGER",
				Message: fmt.Sprintf("trigger %d has empty rectangle [%g,%g)x[%g,%g)", t.ID, t.MinX, t.MaxX, t.MinY, t.MaxY),
			}
		}
		l.triggers[t.ID] = t
	}

	return l, nil
}

// Validate checks the invariants a playable level needs.
func (l *Level) Validate() error {
	if _, ok := l.triggers[SpawnID]; !ok {
		return ContentError{
			Code:    "NO_SPAWN",
			Message: fmt.Sprintf("level %d has no spawn trigger (id 0)", l.number),
		}
	}
	return nil
}

// Number returns the level number.
func (l *Level) Number() int {
	return l.number
}

// Name returns the display name.
func (l *Level) Name() string {
	return l.name
}

// Polygons returns the level polygons. Callers must not modify them.
func (l *Level) Polygons() []core.Polygon {
	return l.polygons
}

// Trigger looks up a trigger by id.
func (l *Level) Trigger(id uint32) (Trigger, bool) {
	t, ok := l.triggers[id]
	return t, ok
}

// Triggers returns all triggers sorted by id.
func (l *Level) Triggers() []Trigger {
	out := make([]Trigger, 0, len(l.triggers))
	for _, t := range l.triggers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Spawn returns the center of trigger 0.
func (l *Level) Spawn() (core.Vec2, error) {
	t, ok := l.triggers[SpawnID]
	if !ok {
		return core.Vec2{}, fmt.Errorf("level %d: %w", l.number, ErrNoSpawn)
	}
	return t.Center(), nil
}

// MustSpawn is Spawn for levels that already passed Validate.
// A missing spawn here is a content bug, so it panics.
func (l *Level) MustSpawn() core.Vec2 {
	p, err := l.Spawn()
	if err != nil {
		panic(err)
	}
	return p
}

// Bounds returns the bounding box of all polygons and triggers.
func (l *Level) Bounds() core.Bounds {
	var b core.Bounds
	first := true
	grow := func(o core.Bounds) {
		if first {
			b = o
			first = false
			return
		}
		b.MinX = min(b.MinX, o.MinX)
		b.MaxX = max(b.MaxX, o.MaxX)
		b.MinY = min(b.MinY, o.MinY)
		b.MaxY = max(b.MaxY, o.MaxY)
	}
	for _, p := range l.polygons {
		grow(p.Bounds())
	}
	for _, t := range l.triggers {
		grow(t.Bounds())
	}
	return b
}
