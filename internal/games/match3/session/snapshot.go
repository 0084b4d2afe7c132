package session

import (
	"time"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
)

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Level:         c.level.Number,
		Name:          c.level.Name,
		Size:          c.board.Size,
		Mask:          c.board.Mask.Rows(),
		Tiles:         append([]engine.Tile(nil), c.board.Tiles...),
		Score:         c.score,
		Target:        c.level.Target,
		Stars:         levels.Stars(c.score, c.level.Target),
		Moves:         c.moves,
		MovesUsed:     c.movesUsed,
		Timed:         c.timed,
		TimeLeft:      c.timeLeft,
		State:         c.state,
		ClearedByKind: c.clearedCopy(),
		Chests:        c.chests,
		ShuffleUses:   c.shuffleUses,
		Goal:          c.level.Goal,
		GoalMet:       levels.IsGoalMet(c.level.Goal, c.Progress()),
		Pops:          append([]ScorePop(nil), c.pops...),
		Flash:         append([]string(nil), c.flash...),
		Steps:         append([]StepRecord(nil), c.steps...),
	}
	if c.selected != nil {
		sel := *c.selected
		s.Selected = &sel
	}
	if m, ok := engine.FindFirstMove(c.board); ok {
		s.Hint = &m
	}
	return s
}

// Progress returns the raw tallies for goal evaluation.
func (c *Controller) Progress() levels.Progress {
	return levels.Progress{
		Score:         c.score,
		Chests:        c.chests,
		ClearedByKind: c.clearedCopy(),
	}
}

// Summary describes the level outcome so far.
func (c *Controller) Summary() Summary {
	stars := levels.Stars(c.score, c.level.Target)
	return Summary{
		Level:     c.level.Number,
		Score:     c.score,
		Target:    c.level.Target,
		Stars:     stars,
		Passed:    stars >= 1,
		GoalMet:   levels.IsGoalMet(c.level.Goal, c.Progress()),
		Chests:    c.chests,
		MovesUsed: c.movesUsed,
		Cascades:  c.cascades,
		MaxCombo:  c.maxCombo,
		Timed:     c.timed,
	}
}

func (c *Controller) clearedCopy() map[engine.Kind]int {
	out := make(map[engine.Kind]int, len(c.cleared))
	for k, v := range c.cleared {
		out[k] = v
	}
	return out
}

// Board returns a copy of the board.
func (c *Controller) Board() engine.Board { return c.board.Clone() }

// Level returns the level definition being played.
func (c *Controller) Level() levels.Level { return c.level }

// State returns the controller phase.
func (c *Controller) State() State { return c.state }

// Score returns the current score.
func (c *Controller) Score() int { return c.score }

// Moves returns the moves left.
func (c *Controller) Moves() int { return c.moves }

// Busy reports whether an action is in flight.
func (c *Controller) Busy() bool { return c.busy }

// Selected returns the selected cell, if any.
func (c *Controller) Selected() (engine.Coord, bool) {
	if c.selected == nil {
		return engine.Coord{}, false
	}
	return *c.selected, true
}

// Hint returns a legal swap, if one exists.
func (c *Controller) Hint() (engine.Move, bool) {
	return engine.FindFirstMove(c.board)
}

// GameOver reports whether the level has ended.
func (c *Controller) GameOver() bool { return c.state == StateGameOver }

// WatchdogInterval returns how often hosts should call WatchdogCheck.
func (c *Controller) WatchdogInterval() time.Duration { return c.opts.Watchdog.Interval }
