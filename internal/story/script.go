// Package story tracks which trigger volumes have fired on the current level
// and turns them into narrative text and control unlocks.
package story

import (
	"fmt"
	"sort"
)

// Effect is what firing a trigger does.
type Effect struct {
	Text          string
	EnableTurning bool
	EnableThrust  bool
	Complete      bool // finishes the level once the text is acknowledged
}

// Entry binds an effect to a trigger on a level.
type Entry struct {
	Level   int
	Trigger uint32
	Effect  Effect
}

type key struct {
	level   int
	trigger uint32
}

// Script is the (level, trigger) -> effect table.
type Script struct {
	effects map[key]Effect
}

// NewScript builds a script. Duplicate (level, trigger) pairs are an error.
func NewScript(entries []Entry) (*Script, error) {
	s := &Script{effects: make(map[key]Effect, len(entries))}
	for _, e := range entries {
		k := key{e.Level, e.Trigger}
		if _, dup := s.effects[k]; dup {
			return nil, fmt.Errorf("story: level %d trigger %d defined twice", e.Level, e.Trigger)
		}
		s.effects[k] = e.Effect
	}
	return s, nil
}

// Lookup returns the effect for a trigger.
func (s *Script) Lookup(level int, trigger uint32) (Effect, bool) {
	if s == nil {
		return Effect{}, false
	}
	e, ok := s.effects[key{level, trigger}]
	return e, ok
}

// Levels returns the level numbers that have at least one entry, ascending.
func (s *Script) Levels() []int {
	if s == nil {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for k := range s.effects {
		if !seen[k.level] {
			seen[k.level] = true
			out = append(out, k.level)
		}
	}
	sort.Ints(out)
	return out
}

// Len returns the number of entries.
func (s *Script) Len() int {
	if s == nil {
		return 0
	}
	return len(s.effects)
}
