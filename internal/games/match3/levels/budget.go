package levels

import (
	"time"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

// Budget is the move and time allowance of a level.
type Budget struct {
	Moves     int
	TimeLimit time.Duration // zero unless Timed
	Timed     bool
}

// ShardLevels are the timed levels.
var ShardLevels = []int{10, 25, 40, 60, 80, 100}

// earlyMoves are fixed budgets for the tutorial levels.
var earlyMoves = map[int]int{1: 12, 2: 14, 3: 16, 4: 18, 5: 20}

const (
	minMovesBudget = 18
	maxMovesBudget = 34
)

// IsShardLevel reports whether level is a timed shard level.
func IsShardLevel(level int) bool {
	for _, l := range ShardLevels {
		if l == level {
			return true
		}
	}
	return false
}

// BudgetFor computes the allowance for level. rng supplies the small
// jitter applied to non-tutorial levels; a nil rng means no jitter.
func BudgetFor(level, gemCount int, rng engine.Source) Budget {
	if IsShardLevel(level) {
		b := shardBudget(level)
		if rng != nil && rng.Float64() >= 0.5 {
			b.Moves++
		}
		return b
	}

	if m, ok := earlyMoves[level]; ok {
		return Budget{Moves: m}
	}

	base := 32 - (gemCount-baseGemCount)*3/2
	jitter := 0
	if rng != nil {
		jitter = rng.Intn(5) - 2
	}
	return Budget{Moves: clamp(base+jitter, minMovesBudget, maxMovesBudget)}
}

func shardBudget(level int) Budget {
	switch {
	case level <= 25:
		return Budget{Moves: 45, TimeLimit: 180 * time.Second, Timed: true}
	case level <= 60:
		return Budget{Moves: 28, TimeLimit: 75 * time.Second, Timed: true}
	default:
		return Budget{Moves: 25, TimeLimit: 60 * time.Second, Timed: true}
	}
}
