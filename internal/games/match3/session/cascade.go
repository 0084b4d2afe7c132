package session

import "github.com/vovakirdan/gemfall/internal/games/match3/engine"

// cascade resolves matches until the board is stable, then guarantees it
// is playable. It runs at most MaxCascades steps.
func (c *Controller) cascade() {
	c.state = StateResolving
	combo := 1

	for n := 1; ; n++ {
		step, ok := engine.ResolveStep(c.board)
		if !ok {
			break
		}
		if n > c.opts.MaxCascades {
			c.log.Warn("cascade cap reached, forcing a playable board",
				"level", c.level.Number,
				"steps", n-1)
			break
		}

		value := c.opts.Scoring.BaseTileValue * combo
		gained := len(step.Cleared) * value
		c.score += gained
		c.record(step.Cleared, value)
		c.board = c.refill(step.Board)

		rec := StepRecord{
			Index:   n,
			Combo:   combo,
			Cleared: len(step.Cleared),
			Created: step.Created,
			Gained:  gained,
		}
		c.steps = append(c.steps, rec)
		c.cascades++
		if combo > c.maxCombo {
			c.maxCombo = combo
		}
		combo++

		if c.opts.Pacer != nil {
			c.opts.Pacer(rec)
		}
	}

	c.board = c.ensurePlayable(c.board)
}

// record adds score pops, flash ids and per-kind tallies for cleared tiles.
func (c *Controller) record(cleared []engine.Tile, popValue int) {
	for i, t := range cleared {
		if i < c.opts.Scoring.PopsPerStep {
			c.pops = append(c.pops, ScorePop{ID: t.ID, Col: t.Col, Row: t.Row, Value: popValue})
		}
		c.flash = append(c.flash, t.ID)
		if !t.IsChest() {
			c.cleared[t.Kind]++
		}
	}
}

// refill applies gravity and checks the result. An inconsistent board is
// logged and replaced with a fresh playable one.
func (c *Controller) refill(b engine.Board) engine.Board {
	layout := c.level.Layout
	out := engine.ApplyGravity(b, c.gen, c.level.Palette, layout.ChestChance())
	if out.Consistent() {
		return out
	}
	c.log.Error("board inconsistent after gravity, rerolling",
		"level", c.level.Number,
		"tiles", len(out.Tiles),
		"active", layout.Mask.ActiveCount())
	return engine.RerollPlayable(layout.BoardSize, layout.Mask, c.level.Palette, c.gen,
		c.minMoves(), c.opts.Rules.RerollTries)
}
