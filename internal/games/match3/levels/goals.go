package levels

import (
	"fmt"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

// GoalType identifies what a level asks the player to achieve.
type GoalType string

const (
	GoalScore GoalType = "score"
	GoalClear GoalType = "clear"
	GoalChest GoalType = "chest"
)

// Goal is the objective of a level.
type Goal struct {
	Type  GoalType    `json:"type"`
	Kind  engine.Kind `json:"kind,omitempty"` // clear goals only
	Count int         `json:"count"`          // score target, gems to clear or chests to open
}

// String returns a short human readable description.
func (g Goal) String() string {
	switch g.Type {
	case GoalScore:
		return fmt.Sprintf("Score %d", g.Count)
	case GoalClear:
		return fmt.Sprintf("Clear %d %s", g.Count, g.Kind)
	case GoalChest:
		if g.Count == 1 {
			return "Open 1 chest"
		}
		return fmt.Sprintf("Open %d chests", g.Count)
	default:
		return "?"
	}
}

// Progress is the raw tally a session reports for goal evaluation.
type Progress struct {
	Score         int
	Chests        int
	ClearedByKind map[engine.Kind]int
}

// GoalFor returns the generated goal for level: a chest on every tenth
// level, a score otherwise.
func GoalFor(level int) Goal {
	if level%10 == 0 {
		return Goal{Type: GoalChest, Count: 1}
	}
	block := (level - 1) / 20
	return Goal{Type: GoalScore, Count: 800 + block*300 + level*10}
}

// IsGoalMet reports whether p satisfies g.
func IsGoalMet(g Goal, p Progress) bool {
	switch g.Type {
	case GoalScore:
		return p.Score >= g.Count
	case GoalClear:
		return p.ClearedByKind[g.Kind] >= g.Count
	case GoalChest:
		return p.Chests >= g.Count
	default:
		return false
	}
}

// TargetScore is the one-star score for level.
func TargetScore(level int) int {
	return 500 + level*250
}

// StarThresholds returns the scores needed for one, two and three stars.
func StarThresholds(target int) [3]int {
	return [3]int{target, target * 3 / 2, target * 2}
}

// Stars rates score against target from 0 to 3.
func Stars(score, target int) int {
	th := StarThresholds(target)
	switch {
	case score >= th[2]:
		return 3
	case score >= th[1]:
		return 2
	case score >= th[0]:
		return 1
	default:
		return 0
	}
}

// Passed reports whether score earns at least one star.
func Passed(score, target int) bool {
	return Stars(score, target) >= 1
}
