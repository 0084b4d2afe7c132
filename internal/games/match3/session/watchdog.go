package session

import (
	"time"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

type watchdogReport struct {
	valid    bool
	level    int
	possible int
}

// WatchdogCheck looks for a dead board and repairs it once the dead state
// has been seen on enough consecutive checks and the cooldown since the
// last repair has passed. It reports whether a repair happened. Hosts call
// it every Watchdog.Interval.
func (c *Controller) WatchdogCheck(now time.Time) bool {
	if c.busy || c.state == StateGameOver || c.selected != nil || len(c.board.Tiles) == 0 {
		return false
	}

	possible := engine.CountPossibleMoves(c.board)
	dead := possible == 0

	changed := !c.lastReport.valid || c.lastReport.level != c.level.Number || c.lastReport.possible != possible
	if dead || changed {
		hint, _ := engine.FindFirstMove(c.board)
		c.log.Debug("watchdog",
			"level", c.level.Number,
			"size", c.board.Size,
			"possibleMoves", possible,
			"dead", dead,
			"tiles", len(c.board.Tiles),
			"hint", hint)
		c.lastReport = watchdogReport{valid: true, level: c.level.Number, possible: possible}
	}

	if !dead {
		c.deadStreak = 0
		return false
	}

	c.deadStreak++
	if c.deadStreak < c.opts.Watchdog.Confirmations {
		return false
	}
	if !c.lastRepair.IsZero() && now.Sub(c.lastRepair) < c.opts.Watchdog.Cooldown {
		return false
	}
	c.lastRepair = now

	c.busy = true
	prev := c.state
	c.state = StateShuffling
	c.board = c.ensurePlayable(c.board)
	c.state = prev
	c.busy = false
	c.deadStreak = 0

	c.log.Info("watchdog repaired dead board", "level", c.level.Number)
	return true
}
