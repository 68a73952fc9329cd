package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// MenuItem is one selectable level.
type MenuItem struct {
	LevelInfo
	Best string // Formatted best time, empty if never completed
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	keys        MenuKeyMap
	help        help.Model
	quitting    bool
	selected    int  // Chosen level number, 0 while browsing
	wantRecords bool // Tab pressed
}

// NewMenuModel creates a level picker. Best times come from store when set.
func NewMenuModel(levels []LevelInfo, store RunStore, tickRate, width, height int) MenuModel {
	items := make([]MenuItem, len(levels))
	for i, l := range levels {
		items[i] = MenuItem{LevelInfo: l}
		if store == nil {
			continue
		}
		if runs, err := store.BestRuns(l.Number, 1); err == nil && len(runs) > 0 {
			items[i].Best = FormatDuration(runs[0].Duration(tickRate))
		}
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].Number
		}

	case key.Matches(msg, m.keys.Records):
		m.wantRecords = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("L U N A R   L A N D E R", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No levels found.", m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		best := "--:--.--"
		if item.Best != "" {
			best = item.Best
		}
		line := fmt.Sprintf("%s%2d. %-20s %s", cursor, item.Number, item.Name, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen level number, or 0 if none.
func (m MenuModel) Selected() int {
	return m.selected
}

// Cursor returns the level number under the cursor, or 0 if there are none.
func (m MenuModel) Cursor() int {
	if len(m.items) == 0 {
		return 0
	}
	return m.items[m.cursor].Number
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.wantRecords
}

// RunMenu runs a full session (level picker, games, records) in the local terminal.
func RunMenu(factory GameFactory, levels []LevelInfo, store RunStore, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(factory, levels, store, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
