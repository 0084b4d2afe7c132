package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		t.Fatalf("parseMatch3(embedded) error = %v", err)
	}
	if want := DefaultMatch3Config(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match3.yaml")
	data := "scoring:\n  chest_bonus: 900\nsession:\n  bonus_moves: 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() error = %v", err)
	}
	if cfg.Scoring.ChestBonus != 900 {
		t.Errorf("ChestBonus = %d, want 900", cfg.Scoring.ChestBonus)
	}
	if cfg.Session.BonusMoves != 4 {
		t.Errorf("BonusMoves = %d, want 4", cfg.Session.BonusMoves)
	}
	// Untouched fields keep defaults.
	if cfg.Cascade.MaxSteps != 30 {
		t.Errorf("MaxSteps = %d, want 30", cfg.Cascade.MaxSteps)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadMatch3(missing) error = nil, want error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("scoring: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(bad); err == nil {
		t.Error("LoadMatch3(malformed) error = nil, want error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  max_gems: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMatch3(invalid)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadMatch3(invalid) error = %v, want ValidationError", err)
	}
	if verr.Field != "board.max_gems" {
		t.Errorf("Field = %q, want %q", verr.Field, "board.max_gems")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Match3Config)
		field  string
	}{
		{"defaults", func(c *Match3Config) {}, ""},
		{"zero tile value", func(c *Match3Config) { c.Scoring.BaseTileValue = 0 }, "scoring.base_tile_value"},
		{"late below early", func(c *Match3Config) { c.Rules.LateMinMoves = 0 }, "rules.late_min_moves"},
		{"cascade cap too high", func(c *Match3Config) { c.Cascade.MaxSteps = 500 }, "cascade.max_steps"},
		{"fast watchdog", func(c *Match3Config) { c.Watchdog.IntervalMs = 10 }, "watchdog.interval_ms"},
		{"too few gems", func(c *Match3Config) { c.Board.MaxGems = 2 }, "board.max_gems"},
		{"negative shuffles", func(c *Match3Config) { c.Session.ShuffleUses = -1 }, "session.shuffle_uses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Error() = %q, want it to name %q", err.Error(), tt.field)
			}
		})
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		shuffles int
		bonus    int
	}{
		{DifficultyEasy, 2, 3},
		{DifficultyNormal, 1, 0},
		{DifficultyHard, 0, -2},
		{DifficultyFixed, 1, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultMatch3Config()
			ApplyMatch3Preset(&cfg, tt.preset)
			if cfg.Session.ShuffleUses != tt.shuffles {
				t.Errorf("ShuffleUses = %d, want %d", cfg.Session.ShuffleUses, tt.shuffles)
			}
			if cfg.Session.BonusMoves != tt.bonus {
				t.Errorf("BonusMoves = %d, want %d", cfg.Session.BonusMoves, tt.bonus)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"hard", DifficultyHard},
		{"fixed", DifficultyFixed},
		{"brutal", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParsePreset(tt.in); got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultYAMLParses(t *testing.T) {
	cfg, err := parseMatch3(DefaultYAML())
	if err != nil {
		t.Fatalf("parseMatch3: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
