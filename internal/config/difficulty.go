package config

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Fixed and normal keep the loaded values.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.ShuffleUses++
		cfg.Session.BonusMoves += 3
	case DifficultyHard:
		cfg.Session.ShuffleUses = 0
		cfg.Session.BonusMoves -= 2
	}
}

