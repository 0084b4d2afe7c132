package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/games/match3"
	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

// pickerLevels is how many levels the level picker lists.
const pickerLevels = 50

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Level  int // start level for campaign entries, 0 for the default
	picker bool
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	setup          match3.Setup
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	levels         *LevelSelectModel
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The campaign entry continues after
// the highest passed level on record.
func NewMenuModel(store *storage.Store, setup match3.Setup, cfg core.RuntimeConfig) MenuModel {
	next := 1
	if store != nil {
		if n, err := store.HighestPassed(); err == nil {
			next = n + 1
		}
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games)+1)
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if g.ID == "gemfall" && next > 1 {
			item.Level = next
			item.Title = fmt.Sprintf("%s (level %d)", g.Title, next)
		}
		items = append(items, item)
	}
	items = append(items, MenuItem{GameID: "gemfall", Title: "Select Level...", picker: true})

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		setup:     setup,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.levels != nil {
		return m.updateLevels(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// updateLevels forwards messages to the open level picker.
func (m MenuModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	picker, ok := next.(LevelSelectModel)
	if !ok {
		return m, cmd
	}

	switch {
	case picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case picker.WantsBack():
		m.levels = nil
		return m, nil
	case picker.Chosen() > 0:
		m.selected = &MenuItem{GameID: "gemfall", Title: "Gemfall", Level: picker.Chosen()}
		m.levels = nil
		return m, tea.Quit
	}
	m.levels = &picker
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.cursor]
		if selected.picker {
			m.openPicker()
			return m, nil
		}
		m.selected = &selected
		return m, tea.Quit // Exit menu to start game

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m *MenuModel) openPicker() {
	var bests map[int]storage.LevelBest
	if m.store != nil {
		bests, _ = m.store.LevelBests()
	}
	picker := NewLevelSelectModel(BuildLevelEntries(m.setup.Catalogue, bests, pickerLevels), m.width, m.height)
	m.levels = &picker
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.levels != nil {
		return m.levels.View()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  G E M F A L L  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range legendLines() {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// legendLines lays the gem legend out two entries per line.
func legendLines() []string {
	legend := match3.Legend(match3.FullPalette())
	var lines []string
	for i := 0; i < len(legend); i += 2 {
		line := legend[i]
		if i+1 < len(legend) {
			line = fmt.Sprintf("%-12s %s", line, legend[i+1])
		}
		lines = append(lines, line)
	}
	return lines
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// NewGame creates the game for a menu selection using setup.
func NewGame(item MenuItem, setup match3.Setup) (registry.Game, error) {
	switch item.GameID {
	case "gemfall":
		return match3.NewWithSetup(match3.ModeCampaign, setup, item.Level), nil
	case "gemfall_endless":
		return match3.NewWithSetup(match3.ModeEndless, setup, 1), nil
	}
	return registry.Create(item.GameID)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item            MenuItem
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, setup match3.Setup, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, setup, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.Item = *m.Selected()
	}
	return result, nil
}
