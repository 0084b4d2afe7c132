// Package formats provides pluggable level pack parsers.
package formats

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level override file.
// Every field except level is optional; zero values keep the generated
// setting.
type YAMLLevel struct {
	Level     int               `yaml:"level"`
	Name      string            `yaml:"name,omitempty"`
	Size      int               `yaml:"size,omitempty"`
	Mask      []string          `yaml:"mask,omitempty"`
	Gems      int               `yaml:"gems,omitempty"`
	Moves     int               `yaml:"moves,omitempty"`
	TimeLimit int               `yaml:"time_limit,omitempty"` // seconds
	Target    int               `yaml:"target,omitempty"`
	Goal      *YAMLGoal         `yaml:"goal,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLGoal represents a goal override.
type YAMLGoal struct {
	Type  string `yaml:"type"`
	Kind  string `yaml:"kind,omitempty"`
	Count int    `yaml:"count"`
}

// Level represents a parsed override ready for use.
type Level struct {
	Level     int
	Name      string
	Size      int
	Mask      []string
	Gems      int
	Moves     int
	TimeLimit time.Duration
	Target    int
	Goal      *YAMLGoal
	Metadata  map[string]string
}

// Size bounds for pack boards.
const (
	MinSize = 5
	MaxSize = 12
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.Level < 1 {
		return Level{}, fmt.Errorf("level must be >= 1, got %d", yl.Level)
	}
	if yl.Size != 0 && (yl.Size < MinSize || yl.Size > MaxSize) {
		return Level{}, fmt.Errorf("size must be in [%d, %d], got %d", MinSize, MaxSize, yl.Size)
	}
	if len(yl.Mask) > 0 {
		size := yl.Size
		if size == 0 {
			size = len(yl.Mask)
		}
		if len(yl.Mask) != size {
			return Level{}, fmt.Errorf("mask has %d rows, want %d", len(yl.Mask), size)
		}
		for i, row := range yl.Mask {
			if len(row) != size {
				return Level{}, fmt.Errorf("mask row %d has %d cells, want %d", i, len(row), size)
			}
		}
		yl.Size = size
	}
	if yl.Goal != nil {
		switch yl.Goal.Type {
		case "score", "chest":
		case "clear":
			if yl.Goal.Kind == "" {
				return Level{}, fmt.Errorf("clear goal needs a kind")
			}
		default:
			return Level{}, fmt.Errorf("unknown goal type %q", yl.Goal.Type)
		}
		if yl.Goal.Count <= 0 {
			return Level{}, fmt.Errorf("goal count must be positive, got %d", yl.Goal.Count)
		}
	}

	return Level{
		Level:     yl.Level,
		Name:      yl.Name,
		Size:      yl.Size,
		Mask:      yl.Mask,
		Gems:      yl.Gems,
		Moves:     yl.Moves,
		TimeLimit: time.Duration(yl.TimeLimit) * time.Second,
		Target:    yl.Target,
		Goal:      yl.Goal,
		Metadata:  yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
