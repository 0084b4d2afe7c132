package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
)

// Scoring holds the point values.
type Scoring struct {
	BaseTileValue   int // per tile per combo level in a cascade step
	SwapBonus       int // flat bonus for a matching swap
	ForcedTileValue int // per tile cleared by a forced activation
	ForcedPopValue  int // label shown on forced-activation pops
	ChestBonus      int
	PopsPerStep     int // score labels emitted per step
}

// DefaultScoring returns the standard point values.
func DefaultScoring() Scoring {
	return Scoring{
		BaseTileValue:   10,
		SwapBonus:       5,
		ForcedTileValue: 12,
		ForcedPopValue:  20,
		ChestBonus:      500,
		PopsPerStep:     8,
	}
}

// Watchdog configures dead-board detection.
type Watchdog struct {
	Interval      time.Duration // how often the host should call WatchdogCheck
	Confirmations int           // consecutive dead checks before a repair
	Cooldown      time.Duration // minimum time between repairs
}

// DefaultWatchdog returns the standard watchdog timing.
func DefaultWatchdog() Watchdog {
	return Watchdog{
		Interval:      450 * time.Millisecond,
		Confirmations: 2,
		Cooldown:      1200 * time.Millisecond,
	}
}

// Pacer is called after every cascade step. It may render or sleep but
// any Tap or Shuffle it issues is rejected.
type Pacer func(rec StepRecord)

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	Catalogue   *levels.Catalogue
	Rules       engine.Rules
	Scoring     Scoring
	Watchdog    Watchdog
	MaxCascades int
	ShuffleUses int // manual shuffles per level; negative means none
	MaxGems     int
	BonusMoves  int // added to every level budget, may be negative

	// ForcedActivationCostsMove makes a non-matching power swap spend a move.
	ForcedActivationCostsMove bool

	Seed   int64
	Source engine.Source // overrides Seed when set
	Logger *log.Logger
	Pacer  Pacer
}

const (
	defaultMaxCascades = 30
	defaultShuffleUses = 1
	defaultMaxGems     = 5
)

func (o Options) withDefaults() Options {
	if o.Rules == (engine.Rules{}) {
		o.Rules = engine.DefaultRules()
	}
	if o.Scoring == (Scoring{}) {
		o.Scoring = DefaultScoring()
	}
	if o.Watchdog == (Watchdog{}) {
		o.Watchdog = DefaultWatchdog()
	}
	if o.MaxCascades <= 0 {
		o.MaxCascades = defaultMaxCascades
	}
	switch {
	case o.ShuffleUses == 0:
		o.ShuffleUses = defaultShuffleUses
	case o.ShuffleUses < 0:
		o.ShuffleUses = 0
	}
	if o.MaxGems <= 0 {
		o.MaxGems = defaultMaxGems
	}
	if o.Catalogue == nil {
		o.Catalogue = levels.NewCatalogue(o.MaxGems)
	}
	if o.Source == nil {
		o.Source = engine.NewSource(o.Seed)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}
	return o
}
