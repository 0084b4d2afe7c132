// Package config provides YAML-based configuration loading and difficulty
// presets for gemfall.
package config

import "fmt"

// Match3Config contains all tunable values for the match-3 game.
type Match3Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Rules    RulesConfig    `yaml:"rules"`
	Cascade  CascadeConfig  `yaml:"cascade"`
	Watchdog WatchdogConfig `yaml:"watchdog"`
	Board    BoardConfig    `yaml:"board"`
	Session  SessionConfig  `yaml:"session"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	BaseTileValue   int `yaml:"base_tile_value"`   // Per tile, multiplied by the combo level
	SwapBonus       int `yaml:"swap_bonus"`        // Flat bonus for a matching swap
	ForcedTileValue int `yaml:"forced_tile_value"` // Per tile cleared by a forced power activation
	ForcedPopValue  int `yaml:"forced_pop_value"`  // Label shown on forced-activation pops
	ChestBonus      int `yaml:"chest_bonus"`
	PopsPerStep     int `yaml:"pops_per_step"`
}

// RulesConfig defines playability thresholds and attempt budgets.
type RulesConfig struct {
	MinMovesLevel      int  `yaml:"min_moves_level"` // First level using late_min_moves
	EarlyMinMoves      int  `yaml:"early_min_moves"`
	LateMinMoves       int  `yaml:"late_min_moves"`
	ShuffleTries       int  `yaml:"shuffle_tries"`
	RerollTries        int  `yaml:"reroll_tries"`
	StartRerollTries   int  `yaml:"start_reroll_tries"`
	ManualShuffleTries int  `yaml:"manual_shuffle_tries"`
	ForcedCostsMove    bool `yaml:"forced_activation_costs_move"`
}

// CascadeConfig bounds cascade resolution.
type CascadeConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// WatchdogConfig defines dead-board detection timing in milliseconds.
type WatchdogConfig struct {
	IntervalMs    int `yaml:"interval_ms"`
	CooldownMs    int `yaml:"cooldown_ms"`
	Confirmations int `yaml:"confirmations"`
}

// BoardConfig defines board generation limits.
type BoardConfig struct {
	MaxGems int `yaml:"max_gems"` // Upper bound on gem kinds per level
}

// SessionConfig defines per-level player resources.
type SessionConfig struct {
	ShuffleUses int    `yaml:"shuffle_uses"` // Manual shuffles per level, 0 disables them
	BonusMoves  int    `yaml:"bonus_moves"`  // Added to every move budget, may be negative
	LevelsDir   string `yaml:"levels_dir"`   // Optional directory of YAML level packs
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values give "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// ValidationError reports an out-of-range config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Message)
}

// Validate checks that every value is usable.
func (c Match3Config) Validate() error {
	checks := []struct {
		field string
		ok    bool
		msg   string
	}{
		{"scoring.base_tile_value", c.Scoring.BaseTileValue > 0, "must be positive"},
		{"scoring.swap_bonus", c.Scoring.SwapBonus >= 0, "must not be negative"},
		{"scoring.forced_tile_value", c.Scoring.ForcedTileValue >= 0, "must not be negative"},
		{"scoring.forced_pop_value", c.Scoring.ForcedPopValue >= 0, "must not be negative"},
		{"scoring.chest_bonus", c.Scoring.ChestBonus >= 0, "must not be negative"},
		{"scoring.pops_per_step", c.Scoring.PopsPerStep > 0, "must be positive"},
		{"rules.min_moves_level", c.Rules.MinMovesLevel >= 1, "must be at least 1"},
		{"rules.early_min_moves", c.Rules.EarlyMinMoves >= 1, "must be at least 1"},
		{"rules.late_min_moves", c.Rules.LateMinMoves >= c.Rules.EarlyMinMoves, "must not be below early_min_moves"},
		{"rules.shuffle_tries", c.Rules.ShuffleTries > 0, "must be positive"},
		{"rules.reroll_tries", c.Rules.RerollTries > 0, "must be positive"},
		{"rules.start_reroll_tries", c.Rules.StartRerollTries > 0, "must be positive"},
		{"rules.manual_shuffle_tries", c.Rules.ManualShuffleTries > 0, "must be positive"},
		{"cascade.max_steps", c.Cascade.MaxSteps >= 1 && c.Cascade.MaxSteps <= 100, "must be between 1 and 100"},
		{"watchdog.interval_ms", c.Watchdog.IntervalMs >= 50, "must be at least 50"},
		{"watchdog.cooldown_ms", c.Watchdog.CooldownMs >= 0, "must not be negative"},
		{"watchdog.confirmations", c.Watchdog.Confirmations >= 1, "must be at least 1"},
		{"board.max_gems", c.Board.MaxGems >= 3 && c.Board.MaxGems <= 12, "must be between 3 and 12"},
		{"session.shuffle_uses", c.Session.ShuffleUses >= 0, "must not be negative"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return &ValidationError{Field: ch.field, Message: ch.msg}
		}
	}
	return nil
}
