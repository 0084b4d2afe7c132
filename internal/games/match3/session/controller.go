// Package session runs a single match-3 level: selection, swaps, cascades,
// move and time accounting, shuffles and the dead-board watchdog.
//
// A Controller is not safe for concurrent use. Hosts that drive it from
// several goroutines must serialize calls themselves.
package session

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
)

// Controller owns all mutable state of a level in progress.
type Controller struct {
	opts Options
	log  *log.Logger
	gen  *engine.Generator

	level levels.Level
	board engine.Board
	state State

	selected *engine.Coord
	busy     bool // in-flight guard

	score       int
	moves       int
	movesUsed   int
	timed       bool
	timeLeft    time.Duration
	chests      int
	cleared     map[engine.Kind]int
	shuffleUses int

	// Output of the last action.
	pops  []ScorePop
	flash []string
	steps []StepRecord

	cascades int
	maxCombo int

	deadStreak int
	lastRepair time.Time
	lastReport watchdogReport
}

// New creates a controller. Call Start before use.
func New(opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		opts:    opts,
		log:     opts.Logger,
		gen:     engine.NewGenerator(opts.Source),
		state:   StateGameOver,
		cleared: make(map[engine.Kind]int),
	}
}

// Start loads level and deals a fresh playable board.
func (c *Controller) Start(level int) {
	c.level = c.opts.Catalogue.Resolve(level, c.gen.Source())

	c.busy = false
	c.selected = nil
	c.score = 0
	c.movesUsed = 0
	c.chests = 0
	c.cleared = make(map[engine.Kind]int)
	c.shuffleUses = c.opts.ShuffleUses
	c.cascades = 0
	c.maxCombo = 0
	c.deadStreak = 0
	c.lastRepair = time.Time{}
	c.lastReport = watchdogReport{}
	c.resetOutput()

	c.moves = c.level.Budget.Moves + c.opts.BonusMoves
	if c.moves < 1 {
		c.moves = 1
	}
	c.timed = c.level.Budget.Timed
	c.timeLeft = c.level.Budget.TimeLimit

	layout := c.level.Layout
	c.board = engine.RerollPlayable(layout.BoardSize, layout.Mask, c.level.Palette, c.gen,
		c.minMoves(), c.opts.Rules.StartRerollTries)
	c.board = c.ensurePlayable(c.board)
	c.state = StateIdle

	if engine.HasMatch(c.board) {
		c.busy = true
		c.cascade()
		c.busy = false
		c.state = StateIdle
	}

	c.log.Info("level started",
		"level", c.level.Number,
		"size", layout.BoardSize,
		"shape", layout.Shape,
		"moves", c.moves,
		"timed", c.timed,
		"target", c.level.Target)
}

// Restart replays the current level.
func (c *Controller) Restart() {
	c.Start(c.level.Number)
}

// Tap handles a click on a cell. Rejected input is a silent no-op and
// returns ActionNone.
func (c *Controller) Tap(pos engine.Coord) Result {
	if !c.acceptingInput() {
		return Result{}
	}
	if !c.board.Mask.Active(pos.Col, pos.Row) {
		return Result{}
	}
	tile, ok := c.board.TileAt(pos.Col, pos.Row)
	if !ok {
		return Result{}
	}

	if tile.IsChest() {
		c.resetOutput()
		return c.openChest(tile)
	}

	switch {
	case c.selected == nil:
		c.selected = &pos
		c.state = StateSelected
		return Result{Action: ActionSelect}
	case *c.selected == pos:
		c.selected = nil
		c.state = StateIdle
		return Result{Action: ActionDeselect}
	case !c.selected.Adjacent(pos):
		c.selected = &pos
		c.state = StateSelected
		return Result{Action: ActionReselect}
	}

	c.resetOutput()
	return c.trySwap(*c.selected, pos)
}

// Shuffle spends one shuffle use to permute the board. It reports whether
// the shuffle happened.
func (c *Controller) Shuffle() bool {
	if c.busy || c.state == StateGameOver || c.shuffleUses <= 0 {
		return false
	}

	c.busy = true
	defer func() { c.busy = false }()

	c.resetOutput()
	c.state = StateShuffling
	c.board = engine.ShuffleToPlayable(c.board, c.gen, c.level.Palette, c.minMoves(),
		c.opts.Rules.ManualShuffleTries, c.opts.Rules.RerollTries)
	c.shuffleUses--
	c.selected = nil
	c.cascade()
	c.settle()
	return true
}

// Tick advances the timer of a timed level.
func (c *Controller) Tick(dt time.Duration) {
	if !c.timed || c.state == StateGameOver || dt <= 0 {
		return
	}
	c.timeLeft -= dt
	if c.timeLeft < 0 {
		c.timeLeft = 0
	}
	if c.timeLeft == 0 && !c.busy {
		c.checkEnd()
	}
}

func (c *Controller) acceptingInput() bool {
	if c.busy || c.state == StateGameOver || c.moves <= 0 {
		return false
	}
	if c.timed && c.timeLeft <= 0 {
		return false
	}
	return true
}

func (c *Controller) trySwap(a, b engine.Coord) Result {
	c.busy = true
	defer func() { c.busy = false }()

	before := c.score
	c.state = StateSwapping
	swapped := c.board.Swap(a, b)

	if engine.HasMatch(swapped) {
		c.board = swapped
		c.spendMove()
		c.selected = nil
		c.score += c.opts.Scoring.SwapBonus
		c.cascade()
		c.settle()
		return Result{Action: ActionSwap, Gained: c.score - before, Steps: len(c.steps)}
	}

	var powered []string
	for _, p := range []engine.Coord{a, b} {
		if t, ok := swapped.TileAt(p.Col, p.Row); ok && t.Power != engine.PowerNone {
			powered = append(powered, t.ID)
		}
	}

	if len(powered) == 0 {
		c.selected = nil
		res := Result{Action: ActionRevert}
		if !engine.HasAnyMove(c.board) {
			c.state = StateShuffling
			c.board = c.ensurePlayable(c.board)
			res.Repaired = true
			c.log.Info("dead board repaired after invalid swap", "level", c.level.Number)
		}
		c.state = StateIdle
		return res
	}

	step, _ := engine.ActivatePowers(swapped, powered...)
	c.state = StateResolving
	c.score += len(step.Cleared) * c.opts.Scoring.ForcedTileValue
	c.record(step.Cleared, c.opts.Scoring.ForcedPopValue)
	c.board = c.refill(step.Board)
	if c.opts.ForcedActivationCostsMove {
		c.spendMove()
	}
	c.selected = nil
	c.cascade()
	c.settle()
	return Result{Action: ActionForced, Gained: c.score - before, Steps: len(c.steps)}
}

func (c *Controller) openChest(tile engine.Tile) Result {
	c.busy = true
	defer func() { c.busy = false }()

	before := c.score
	c.state = StateResolving
	c.score += c.opts.Scoring.ChestBonus
	c.chests++
	c.pops = append(c.pops, ScorePop{ID: tile.ID, Col: tile.Col, Row: tile.Row, Value: c.opts.Scoring.ChestBonus})
	c.flash = append(c.flash, tile.ID)

	c.board = c.refill(c.board.Remove(tile.ID))
	c.cascade()
	c.selected = nil
	c.settle()
	return Result{Action: ActionChest, Gained: c.score - before, Steps: len(c.steps)}
}

func (c *Controller) spendMove() {
	if c.moves > 0 {
		c.moves--
	}
	c.movesUsed++
}

// settle returns to Idle after an action and evaluates the end condition.
func (c *Controller) settle() {
	if c.selected != nil {
		c.state = StateSelected
	} else {
		c.state = StateIdle
	}
	c.checkEnd()
}

func (c *Controller) checkEnd() {
	if c.state == StateGameOver {
		return
	}
	if c.moves > 0 && !(c.timed && c.timeLeft <= 0) {
		return
	}
	c.state = StateGameOver
	c.selected = nil
	s := c.Summary()
	c.log.Info("level over",
		"level", s.Level,
		"score", s.Score,
		"stars", s.Stars,
		"passed", s.Passed,
		"goal", s.GoalMet)
}

func (c *Controller) minMoves() int {
	return c.opts.Rules.MinMoves(c.level.Number)
}

func (c *Controller) ensurePlayable(b engine.Board) engine.Board {
	return engine.EnsurePlayable(b, c.level.Number, c.gen, c.level.Palette, c.opts.Rules)
}

func (c *Controller) resetOutput() {
	c.pops = nil
	c.flash = nil
	c.steps = nil
}
