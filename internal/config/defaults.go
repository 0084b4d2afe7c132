package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Scoring: ScoringConfig{
			BaseTileValue:   10,
			SwapBonus:       5,
			ForcedTileValue: 12,
			ForcedPopValue:  20,
			ChestBonus:      500,
			PopsPerStep:     8,
		},
		Rules: RulesConfig{
			MinMovesLevel:      11,
			EarlyMinMoves:      1,
			LateMinMoves:       6,
			ShuffleTries:       220,
			RerollTries:        520,
			StartRerollTries:   700,
			ManualShuffleTries: 260,
			ForcedCostsMove:    false,
		},
		Cascade: CascadeConfig{
			MaxSteps: 30,
		},
		Watchdog: WatchdogConfig{
			IntervalMs:    450,
			CooldownMs:    1200,
			Confirmations: 2,
		},
		Board: BoardConfig{
			MaxGems: 5,
		},
		Session: SessionConfig{
			ShuffleUses: 1,
			BonusMoves:  0,
		},
	}
}

// DefaultYAML returns the embedded default match3.yaml.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
