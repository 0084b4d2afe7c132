// Package match3 adapts the gemfall match-3 session to the platform game
// interface: cursor input, simulated time for the watchdog and timed
// levels, level progression and rendering.
package match3

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/session"
	"github.com/vovakirdan/gemfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// advanceDelay is how long the endless mode shows the level-clear overlay.
const advanceDelay = 2 * time.Second

// flashDelay is how long the last action note stays highlighted.
const flashDelay = 600 * time.Millisecond

// Package-level variables for CLI settings
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	selectedLevel    int
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevelsDir sets a directory of YAML level packs.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel sets the level the next game starts on. 0 means level 1.
func SetStartLevel(level int) {
	selectedLevel = level
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game implements the match-3 game.
type Game struct {
	mode  Mode
	setup *Setup // fixed setup, nil loads from package settings on Reset
	first int    // start level for a fixed setup
	ctrl  *session.Controller

	tick    uint64
	tickDur time.Duration
	clock   time.Time // simulated, advances one tickDur per step
	nextDog time.Time

	cursor   engine.Coord
	showHint bool
	paused   bool
	tooSmall bool
	screenW  int
	screenH  int

	level     int // current level number
	total     int // banked score of cleared levels (endless)
	levelDone bool
	over      bool
	doneAt    time.Time

	note      string
	noteAt    time.Time
	pending   []registry.LevelResult
	lastLevel session.Summary
}

// New creates a new campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithSetup creates a game that uses s instead of the package settings
// and starts on level first.
func NewWithSetup(mode Mode, s Setup, first int) *Game {
	if first < 1 {
		first = 1
	}
	return &Game{mode: mode, setup: &s, first: first}
}

func init() {
	registry.Register("gemfall", func() registry.Game {
		return New()
	})
	registry.Register("gemfall_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "gemfall_endless"
	}
	return "gemfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Gemfall (Endless)"
	}
	return "Gemfall"
}

// Reset initializes or restarts the game. A campaign game that already
// reached a level resumes on it; otherwise the selected start level is used.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	setup := g.loadSetup()

	g.ctrl = setup.NewController(cfg.Seed)

	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tick = 0
	g.tickDur = time.Second / time.Duration(rate)
	g.clock = time.Unix(0, 0)
	g.nextDog = g.clock.Add(g.ctrl.WatchdogInterval())

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.showHint = false
	g.over = false
	g.levelDone = false
	g.note = ""
	g.total = 0

	if g.mode == ModeEndless || g.level == 0 {
		g.level = g.firstLevel()
	}

	g.startLevel(g.level)
	g.checkScreenSize()
}

func (g *Game) firstLevel() int {
	if g.setup != nil {
		return g.first
	}
	if selectedLevel > 0 {
		return selectedLevel
	}
	return 1
}

func (g *Game) loadSetup() Setup {
	if g.setup != nil {
		return *g.setup
	}
	s, err := LoadSetup(configPath, difficultyPreset, levelsDir, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
		return DefaultSetup(logger)
	}
	return s
}

func (g *Game) startLevel(level int) {
	g.level = level
	g.levelDone = false
	g.ctrl.Start(level)
	g.cursor = g.centerCursor()
}

// centerCursor returns the active cell nearest the board center.
func (g *Game) centerCursor() engine.Coord {
	b := g.ctrl.Board()
	mid := b.Size / 2
	best := engine.At(mid, mid)
	bestDist := -1
	for _, c := range b.Mask.Cells() {
		d := core.Abs(c.Col-mid) + core.Abs(c.Row-mid)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Resize adapts the layout to a new screen size without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.ctrl != nil {
		g.checkScreenSize()
	}
}

// PointAt moves the cursor to the board cell under screen position (x, y).
// It reports false when the position is outside the active board.
func (g *Game) PointAt(x, y int) bool {
	if g.ctrl == nil || g.tooSmall {
		return false
	}
	b := g.ctrl.Board()
	boardX := (g.screenW - (b.Size*cellWidth + 2)) / 2
	grid := core.NewRect(boardX+1, hudHeight+1, b.Size*cellWidth, b.Size)
	if !grid.Contains(x, y) {
		return false
	}
	col := (x - grid.X) / cellWidth
	row := y - grid.Y
	if !b.Mask.Active(col, row) {
		return false
	}
	g.cursor = engine.At(col, row)
	return true
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	size := g.ctrl.Board().Size
	minW := size*cellWidth + 2
	if minW < hudMinWidth {
		minW = hudMinWidth
	}
	minH := size + hudHeight + footerHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock = g.clock.Add(g.tickDur)

	if g.over {
		return core.StepResult{State: g.State()}
	}

	if g.levelDone {
		g.stepLevelDone(in)
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	g.ctrl.Tick(g.tickDur)
	if !g.clock.Before(g.nextDog) {
		g.ctrl.WatchdogCheck(g.clock)
		g.nextDog = g.clock.Add(g.ctrl.WatchdogInterval())
	}

	if g.ctrl.GameOver() {
		g.finishLevel()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	size := g.ctrl.Board().Size
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, size-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, size-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, size-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, size-1)
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.setNote(describe(g.ctrl.Tap(g.cursor)))
	case in.Has(core.ActionShuffle):
		if g.ctrl.Shuffle() {
			g.setNote("Shuffled")
		}
	case in.Has(core.ActionHint):
		g.showHint = !g.showHint
	case in.Has(core.ActionRestart):
		g.ctrl.Restart()
		g.cursor = g.centerCursor()
		g.note = ""
	}
}

func (g *Game) setNote(text string) {
	if text == "" {
		return
	}
	g.note = text
	g.noteAt = g.clock
}

// describe turns an action result into a short HUD note.
func describe(r session.Result) string {
	var text string
	switch r.Action {
	case session.ActionSwap:
		text = fmt.Sprintf("+%d", r.Gained)
		if r.Steps > 1 {
			text = fmt.Sprintf("+%d  combo x%d", r.Gained, r.Steps)
		}
	case session.ActionForced:
		text = fmt.Sprintf("Power! +%d", r.Gained)
	case session.ActionChest:
		text = fmt.Sprintf("Chest! +%d", r.Gained)
	case session.ActionRevert:
		text = "No match"
	default:
		return ""
	}
	if r.Repaired {
		text += " (reshuffled)"
	}
	return text
}

// finishLevel records the level result and decides what comes next.
func (g *Game) finishLevel() {
	s := g.ctrl.Summary()
	g.lastLevel = s
	g.pending = append(g.pending, registry.LevelResult{
		Level:     s.Level,
		Score:     s.Score,
		Stars:     s.Stars,
		Passed:    s.Passed,
		Chests:    s.Chests,
		MovesUsed: s.MovesUsed,
	})

	if !s.Passed {
		g.over = true
		return
	}
	g.levelDone = true
	g.doneAt = g.clock
	if g.mode == ModeEndless {
		g.total += s.Score
	}
}

// stepLevelDone waits on the level-clear overlay. Campaign advances on
// Confirm and replays on Restart; endless advances by itself.
func (g *Game) stepLevelDone(in core.InputFrame) {
	switch {
	case in.Has(core.ActionConfirm):
		g.startLevel(g.level + 1)
	case in.Has(core.ActionRestart) && g.mode == ModeCampaign:
		g.startLevel(g.level)
	case g.mode == ModeEndless && g.clock.Sub(g.doneAt) >= advanceDelay:
		g.startLevel(g.level + 1)
	}
	if !g.levelDone {
		g.checkScreenSize()
	}
}

// DrainResults returns and clears the results of finished levels.
func (g *Game) DrainResults() []registry.LevelResult {
	out := g.pending
	g.pending = nil
	return out
}

// Controller exposes the underlying session.
func (g *Game) Controller() *session.Controller {
	return g.ctrl
}

// Level returns the level being played.
func (g *Game) Level() int {
	return g.level
}

// score is the level score in campaign and the running total in endless.
func (g *Game) score() int {
	if g.mode == ModeEndless {
		if g.levelDone {
			return g.total
		}
		return g.total + g.ctrl.Score()
	}
	return g.ctrl.Score()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.score(),
		Level:    g.Level(),
		GameOver: g.over,
		Paused:   g.paused || g.tooSmall || g.levelDone,
	}
}
