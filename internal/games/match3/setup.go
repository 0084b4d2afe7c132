package match3

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
	"github.com/vovakirdan/gemfall/internal/games/match3/session"
)

// Setup bundles what every host needs to build controllers: the loaded
// config, the level catalogue and a logger. A Setup is read-only after
// LoadSetup and may be shared between sessions.
type Setup struct {
	Config    config.Match3Config
	Catalogue *levels.Catalogue
	Logger    *log.Logger
}

// LoadSetup loads the config, applies the preset and reads level packs
// from levelsDir (or the config's levels_dir when empty). Unparseable
// pack files are logged and skipped.
func LoadSetup(configPath string, preset config.DifficultyPreset, levelsDir string, logger *log.Logger) (Setup, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}

	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		return Setup{}, err
	}
	if preset != "" {
		config.ApplyMatch3Preset(&cfg, preset)
	}

	cat := levels.NewCatalogue(cfg.Board.MaxGems)
	if levelsDir == "" {
		levelsDir = cfg.Session.LevelsDir
	}
	if levelsDir != "" {
		skipped, err := cat.LoadDir(levelsDir)
		if err != nil {
			return Setup{}, fmt.Errorf("match3: cannot load levels: %w", err)
		}
		for _, e := range skipped {
			logger.Warn("skipping level file", "err", e)
		}
	}

	return Setup{Config: cfg, Catalogue: cat, Logger: logger}, nil
}

// DefaultSetup returns the built-in config with the generated campaign.
func DefaultSetup(logger *log.Logger) Setup {
	cfg := config.DefaultMatch3Config()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}
	return Setup{
		Config:    cfg,
		Catalogue: levels.NewCatalogue(cfg.Board.MaxGems),
		Logger:    logger,
	}
}

// Options converts the setup into controller options for one seed.
func (s Setup) Options(seed int64) session.Options {
	c := s.Config

	shuffles := c.Session.ShuffleUses
	if shuffles <= 0 {
		shuffles = -1 // none
	}

	return session.Options{
		Catalogue: s.Catalogue,
		Rules: engine.Rules{
			MinMovesLevel:      c.Rules.MinMovesLevel,
			EarlyMinMoves:      c.Rules.EarlyMinMoves,
			LateMinMoves:       c.Rules.LateMinMoves,
			ShuffleTries:       c.Rules.ShuffleTries,
			RerollTries:        c.Rules.RerollTries,
			StartRerollTries:   c.Rules.StartRerollTries,
			ManualShuffleTries: c.Rules.ManualShuffleTries,
		},
		Scoring: session.Scoring{
			BaseTileValue:   c.Scoring.BaseTileValue,
			SwapBonus:       c.Scoring.SwapBonus,
			ForcedTileValue: c.Scoring.ForcedTileValue,
			ForcedPopValue:  c.Scoring.ForcedPopValue,
			ChestBonus:      c.Scoring.ChestBonus,
			PopsPerStep:     c.Scoring.PopsPerStep,
		},
		Watchdog: session.Watchdog{
			Interval:      time.Duration(c.Watchdog.IntervalMs) * time.Millisecond,
			Confirmations: c.Watchdog.Confirmations,
			Cooldown:      time.Duration(c.Watchdog.CooldownMs) * time.Millisecond,
		},
		MaxCascades:               c.Cascade.MaxSteps,
		ShuffleUses:               shuffles,
		MaxGems:                   c.Board.MaxGems,
		BonusMoves:                c.Session.BonusMoves,
		ForcedActivationCostsMove: c.Rules.ForcedCostsMove,
		Seed:                      seed,
		Logger:                    s.Logger,
	}
}

// NewController builds a controller for seed. Call Start on it.
func (s Setup) NewController(seed int64) *session.Controller {
	return session.New(s.Options(seed))
}
