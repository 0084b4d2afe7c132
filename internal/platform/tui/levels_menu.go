package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gemfall/internal/games/match3"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
	"github.com/vovakirdan/gemfall/internal/storage"
)

// LevelEntry is one row of the level picker.
type LevelEntry struct {
	Number   int
	Line     string
	Stars    int
	Played   bool
	Unlocked bool
}

// BuildLevelEntries lists levels 1..count. A level is unlocked when it is
// level 1 or the level before it was passed.
func BuildLevelEntries(cat *levels.Catalogue, bests map[int]storage.LevelBest, count int) []LevelEntry {
	entries := make([]LevelEntry, 0, count)
	for n := 1; n <= count; n++ {
		best, played := bests[n]
		prev := bests[n-1]
		entries = append(entries, LevelEntry{
			Number:   n,
			Line:     match3.LevelLine(cat.Resolve(n, nil)),
			Stars:    best.BestStars,
			Played:   played,
			Unlocked: n == 1 || prev.Passes > 0,
		})
	}
	return entries
}

// LevelSelectModel lets users pick the level a campaign starts on.
type LevelSelectModel struct {
	entries   []LevelEntry
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    int
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a picker over entries.
func NewLevelSelectModel(entries []LevelEntry, width, height int) LevelSelectModel {
	return LevelSelectModel{
		entries:   entries,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.entries) > 0 && m.entries[m.cursor].Unlocked {
			m.chosen = m.entries[m.cursor].Number
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// visibleRange returns the slice of entries that fits the window.
func (m LevelSelectModel) visibleRange() (int, int) {
	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	if rows >= len(m.entries) {
		return 0, len(m.entries)
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(m.entries) {
		start = len(m.entries) - rows
	}
	return start, start + rows
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "   "
		switch {
		case !e.Unlocked:
			mark = " ✗ "
		case e.Played:
			mark = starText(e.Stars)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, e.Line))
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Chosen returns the picked level, or 0 while still choosing.
func (m LevelSelectModel) Chosen() int {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

func starText(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}
