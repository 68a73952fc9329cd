package story

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/level"
)

// Event is the result of a trigger firing.
type Event struct {
	TriggerID uint32
	Effect    Effect
	// HasEffect is false for the spawn trigger, which only gets marked.
	HasEffect bool
	// Unknown is set when the script has no entry for the trigger.
	// Effect.Text then carries a diagnostic.
	Unknown bool
}

// Machine holds per-level trigger state: the fired set and the pending text.
// A new Machine is built on every level load; respawning keeps the old one.
type Machine struct {
	level    int
	triggers []level.Trigger // sorted by id
	script   *Script
	fired    map[uint32]bool
	pending  string
	hasText  bool
	logger   *log.Logger
}

// NewMachine creates the trigger state for one level attempt.
func NewMachine(levelNum int, triggers []level.Trigger, script *Script, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sorted := append([]level.Trigger(nil), triggers...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return &Machine{
		level:    levelNum,
		triggers: sorted,
		script:   script,
		fired:    make(map[uint32]bool, len(triggers)),
		logger:   logger,
	}
}

// Check fires at most one un-fired trigger containing pos. When several
// overlap, the lowest id wins. The trigger is marked fired before its effect
// is resolved.
func (m *Machine) Check(pos core.Vec2) (Event, bool) {
	for _, t := range m.triggers {
		if m.fired[t.ID] || !t.Contains(pos) {
			continue
		}
		m.fired[t.ID] = true

		if t.ID == level.SpawnID {
			return Event{TriggerID: t.ID}, true
		}

		eff, ok := m.script.Lookup(m.level, t.ID)
		if !ok {
			m.logger.Warn("no story for trigger", "level", m.level, "trigger", t.ID)
			return Event{
				TriggerID: t.ID,
				Effect:    Effect{Text: fmt.Sprintf("BUG: no story for trigger %d on level %d", t.ID, m.level)},
				HasEffect: true,
				Unknown:   true,
			}, true
		}
		return Event{TriggerID: t.ID, Effect: eff, HasEffect: true}, true
	}
	return Event{}, false
}

// Show sets the pending message, replacing any previous one.
func (m *Machine) Show(text string) {
	m.pending = text
	m.hasText = true
}

// Pending returns the message awaiting acknowledgement.
func (m *Machine) Pending() (string, bool) {
	return m.pending, m.hasText
}

// Paused reports whether physics is suspended for text.
func (m *Machine) Paused() bool {
	return m.hasText
}

// Acknowledge dismisses the pending message. It reports whether one was shown.
func (m *Machine) Acknowledge() bool {
	if !m.hasText {
		return false
	}
	m.pending = ""
	m.hasText = false
	return true
}

// Fired reports whether a trigger has fired on this level attempt.
func (m *Machine) Fired(id uint32) bool {
	return m.fired[id]
}

// FiredCount returns how many triggers have fired.
func (m *Machine) FiredCount() int {
	return len(m.fired)
}

// FiredIDs returns the fired trigger ids in ascending order.
func (m *Machine) FiredIDs() []uint32 {
	ids := make([]uint32, 0, len(m.fired))
	for id := range m.fired {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}
