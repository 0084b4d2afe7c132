package session

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
)

// State is the controller phase.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateSwapping
	StateResolving
	StateShuffling
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateSwapping:
		return "swapping"
	case StateResolving:
		return "resolving"
	case StateShuffling:
		return "shuffling"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for v := StateIdle; v <= StateGameOver; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("session: unknown state %q", text)
}

// Action is what a Tap did.
type Action int

const (
	ActionNone     Action = iota // input rejected
	ActionSelect                 // tile selected
	ActionDeselect               // selection cleared
	ActionReselect               // selection moved to a non-adjacent tile
	ActionSwap                   // swap matched and the board cascaded
	ActionRevert                 // swap matched nothing and was undone
	ActionForced                 // swap matched nothing but fired a power
	ActionChest                  // chest opened
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionDeselect:
		return "deselect"
	case ActionReselect:
		return "reselect"
	case ActionSwap:
		return "swap"
	case ActionRevert:
		return "revert"
	case ActionForced:
		return "forced"
	case ActionChest:
		return "chest"
	default:
		return "none"
	}
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(text []byte) error {
	for v := ActionNone; v <= ActionChest; v++ {
		if v.String() == string(text) {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("session: unknown action %q", text)
}

// Result summarizes one Tap or Shuffle.
type Result struct {
	Action   Action `json:"action"`
	Gained   int    `json:"gained"`   // points earned by the action
	Steps    int    `json:"steps"`    // cascade steps resolved
	Repaired bool   `json:"repaired"` // the board was reshuffled or rerolled
}

// ScorePop is a floating score label anchored on a cleared tile.
type ScorePop struct {
	ID    string `json:"id"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
	Value int    `json:"value"`
}

// StepRecord describes one resolved cascade step.
type StepRecord struct {
	Index   int              `json:"index"`
	Combo   int              `json:"combo"`
	Cleared int              `json:"cleared"`
	Created *engine.Creation `json:"created,omitempty"`
	Gained  int              `json:"gained"`
}

// Snapshot is a plain copy of the controller state for renderers and
// remote clients.
type Snapshot struct {
	Level         int                 `json:"level"`
	Name          string              `json:"name"`
	Size          int                 `json:"size"`
	Mask          []string            `json:"mask"`
	Tiles         []engine.Tile       `json:"tiles"`
	Score         int                 `json:"score"`
	Target        int                 `json:"target"`
	Stars         int                 `json:"stars"`
	Moves         int                 `json:"moves"`
	MovesUsed     int                 `json:"movesUsed"`
	Timed         bool                `json:"timed"`
	TimeLeft      time.Duration       `json:"timeLeft"`
	Selected      *engine.Coord       `json:"selected,omitempty"`
	State         State               `json:"state"`
	ClearedByKind map[engine.Kind]int `json:"clearedByKind"`
	Chests        int                 `json:"chests"`
	ShuffleUses   int                 `json:"shuffleUses"`
	Goal          levels.Goal         `json:"goal"`
	GoalMet       bool                `json:"goalMet"`
	Pops          []ScorePop          `json:"pops"`
	Flash         []string            `json:"flash"`
	Hint          *engine.Move        `json:"hint,omitempty"`
	Steps         []StepRecord        `json:"steps"`
}

// Summary is the record of a finished level.
type Summary struct {
	Level     int
	Score     int
	Target    int
	Stars     int
	Passed    bool
	GoalMet   bool
	Chests    int
	MovesUsed int
	Cascades  int
	MaxCombo  int
	Timed     bool
}
