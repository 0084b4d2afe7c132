// Package levels describes the Gemfall campaign: board shapes, gem
// palettes, move and time budgets, score targets and goals. Levels are
// generated from the level number and may be overridden by YAML packs.
package levels

import "github.com/vovakirdan/gemfall/internal/games/match3/engine"

// Shape names the mask family a level uses.
type Shape string

const (
	ShapeDiamond    Shape = "diamond"
	ShapeCutCorners Shape = "cut_corners"
	ShapePlus       Shape = "plus"
	ShapeHolesLight Shape = "holes_light"
	ShapeFull       Shape = "full"
	ShapeCustom     Shape = "custom" // mask supplied by a level pack
)

const (
	minActiveCells    = 24 // smaller masks fall back to full
	baseGemCount      = 5
	maxGemCountLimit  = 12
	chestChanceBoss   = 0.05
	chestChanceNormal = 0.001
)

// shapeCycle is indexed by (level-1) % 5.
var shapeCycle = [...]Shape{ShapeDiamond, ShapeCutCorners, ShapePlus, ShapeHolesLight, ShapeFull}

// sizeCycle is indexed by the ten-level phase.
var sizeCycle = [...]int{8, 7, 9}

// LevelConfig is the board layout of a level.
type LevelConfig struct {
	Level             int
	BoardSize         int
	Shape             Shape
	Mask              engine.Mask
	GemCount          int
	ChestChanceBoss   float64
	ChestChanceNormal float64
}

// ChestChance returns the refill chest probability for this level.
func (c LevelConfig) ChestChance() float64 {
	return engine.ChestChance(c.Level, c.ChestChanceBoss, c.ChestChanceNormal)
}

// Palette returns the deterministic kind palette for this level.
func (c LevelConfig) Palette() []engine.Kind {
	return engine.PaletteForLevel(c.Level, c.GemCount)
}

// Config builds the generated layout for level. maxGems caps the palette
// size (it is itself clamped to [5, 12]).
func Config(level, maxGems int) LevelConfig {
	if level < 1 {
		level = 1
	}

	phase := ((level - 1) / 10) % len(sizeCycle)
	size := sizeCycle[phase]
	shape := shapeCycle[(level-1)%len(shapeCycle)]

	mask := MaskFor(shape, size)
	if mask.ActiveCount() < minActiveCells {
		shape = ShapeFull
		mask = engine.FullMask(size)
	}

	return LevelConfig{
		Level:             level,
		BoardSize:         size,
		Shape:             shape,
		Mask:              mask,
		GemCount:          GemCountForLevel(level, maxGems),
		ChestChanceBoss:   chestChanceBoss,
		ChestChanceNormal: chestChanceNormal,
	}
}

// GemCountForLevel grows the palette by one kind every ten levels, within
// [5, clamp(maxGems, 5, 12)].
func GemCountForLevel(level, maxGems int) int {
	want := baseGemCount + (level-1)/10
	return clamp(want, baseGemCount, clamp(maxGems, baseGemCount, maxGemCountLimit))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
