// Package registry maps game ids to factories. Game packages register in
// init() and the CLI, menu and servers create games by id.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/gemfall/internal/core"
)

// Game is a playable mode driven by a front end. Implementations hold no
// terminal state: the tui package maps keys and mouse clicks to input
// frames, calls Step at the tick rate and draws the Screen that Render
// fills.
type Game interface {
	// ID is the key scores are stored under ("gemfall", "gemfall_endless").
	ID() string

	// Title is shown in menus and on the scoreboard.
	Title() string

	// Reset starts a new run sized to cfg and dealt from cfg.Seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one input frame and advances the clock by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, level and pause/over flags.
	State() core.GameState
}

// LevelResult describes one finished level of a level-based game.
type LevelResult struct {
	Level     int
	Score     int
	Stars     int
	Passed    bool
	Chests    int
	MovesUsed int
}

// LevelReporter is implemented by games that report finished levels.
// The platform drains results after each step and persists them.
type LevelReporter interface {
	DrainResults() []LevelResult
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
