package levels

import (
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels/formats"
)

// Level is a fully resolved level definition.
type Level struct {
	Number  int
	Name    string
	Layout  LevelConfig
	Budget  Budget
	Target  int
	Goal    Goal
	Palette []engine.Kind
	Source  string // "generated" or the pack file path
}

// Catalogue resolves level numbers to definitions, applying pack
// overrides on top of the generated campaign.
type Catalogue struct {
	MaxGems   int
	overrides map[int]Override
}

// NewCatalogue creates a catalogue with no overrides.
func NewCatalogue(maxGems int) *Catalogue {
	return &Catalogue{MaxGems: maxGems, overrides: make(map[int]Override)}
}

// Add registers overrides. Later entries for the same level win.
func (c *Catalogue) Add(ovs ...Override) {
	for _, ov := range ovs {
		c.overrides[ov.Spec.Level] = ov
	}
}

// LoadDir adds every pack file under dir. Unparseable files are returned
// as skipped errors and do not abort loading.
func (c *Catalogue) LoadDir(dir string) ([]error, error) {
	ovs, skipped, err := NewLoader(dir).LoadAll()
	if err != nil {
		return skipped, err
	}
	c.Add(ovs...)
	return skipped, nil
}

// Overridden reports whether level comes from a pack.
func (c *Catalogue) Overridden(level int) bool {
	_, ok := c.overrides[level]
	return ok
}

// Resolve builds the definition of level. rng drives the move jitter; a
// nil rng gives the unjittered budget.
func (c *Catalogue) Resolve(level int, rng engine.Source) Level {
	if level < 1 {
		level = 1
	}
	layout := Config(level, c.MaxGems)
	lvl := Level{
		Number: level,
		Name:   defaultName(level),
		Layout: layout,
		Target: TargetScore(level),
		Goal:   GoalFor(level),
		Source: "generated",
	}

	ov, ok := c.overrides[level]
	if ok {
		applyLayout(&lvl.Layout, ov.Spec)
		if ov.Spec.Name != "" {
			lvl.Name = ov.Spec.Name
		}
		if ov.Spec.Target > 0 {
			lvl.Target = ov.Spec.Target
		}
		if g := ov.Spec.Goal; g != nil {
			lvl.Goal = Goal{Type: GoalType(g.Type), Kind: engine.Kind(g.Kind), Count: g.Count}
		}
		lvl.Source = ov.FilePath
	}

	lvl.Budget = BudgetFor(level, lvl.Layout.GemCount, rng)
	if ok {
		if ov.Spec.Moves > 0 {
			lvl.Budget.Moves = ov.Spec.Moves
		}
		if ov.Spec.TimeLimit > 0 {
			lvl.Budget.TimeLimit = ov.Spec.TimeLimit
			lvl.Budget.Timed = true
		}
	}

	lvl.Palette = lvl.Layout.Palette()
	return lvl
}

func applyLayout(layout *LevelConfig, spec formats.Level) {
	if spec.Size > 0 && spec.Size != layout.BoardSize {
		layout.BoardSize = spec.Size
		layout.Mask = MaskFor(layout.Shape, spec.Size)
		if layout.Mask.ActiveCount() < minActiveCells {
			layout.Shape = ShapeFull
			layout.Mask = engine.FullMask(spec.Size)
		}
	}
	if len(spec.Mask) > 0 {
		layout.Shape = ShapeCustom
		layout.Mask = engine.ParseMask(spec.Mask)
	}
	if spec.Gems > 0 {
		layout.GemCount = clamp(spec.Gems, 1, maxGemCountLimit)
	}
}

// chapterNames label each ten-level block.
var chapterNames = []string{
	"Ember Vault", "Blood Moon", "Violet Halls", "Onyx Deep", "Silver Reach",
}

func defaultName(level int) string {
	chapter := chapterNames[((level-1)/10)%len(chapterNames)]
	if IsShardLevel(level) {
		return chapter + " Shard"
	}
	return chapter
}
