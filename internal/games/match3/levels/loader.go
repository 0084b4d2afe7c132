package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/gemfall/internal/games/match3/levels/formats"
)

// Override is a level pack entry loaded from disk.
type Override struct {
	Spec     formats.Level
	FilePath string
}

// Loader handles loading level packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns overrides sorted by level number for deterministic ordering.
// Files that fail to parse are skipped and reported in the error slice.
func (l *Loader) LoadAll() ([]Override, []error, error) {
	var out []Override
	var skipped []error

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		ov, err := l.LoadFile(path)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		out = append(out, ov)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spec.Level < out[j].Spec.Level
	})
	return out, skipped, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Override{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Override{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return Override{Spec: parsed, FilePath: path}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
