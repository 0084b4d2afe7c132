package match3

import (
	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/session"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateLevelClear  GameStateType = "level_clear"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64           `json:"tick"`
	Mode     string           `json:"mode"`
	Level    int              `json:"level"`
	Score    int              `json:"score"` // level score, or running total in endless
	Cursor   engine.Coord     `json:"cursor"`
	ShowHint bool             `json:"showHint"`
	State    GameStateType    `json:"state"`
	Session  session.Snapshot `json:"session"`
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.over:
		state = StateGameOver
	case g.levelDone:
		state = StateLevelClear
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Level:    g.level,
		Score:    g.score(),
		Cursor:   g.cursor,
		ShowHint: g.showHint,
		State:    state,
		Session:  g.ctrl.Snapshot(),
	}
}
