package engine

// Move is a legal swap suggestion.
type Move struct {
	From     Coord `json:"from"`
	To       Coord `json:"to"`
	FromKind Kind  `json:"fromKind"`
	ToKind   Kind  `json:"toKind"`
}

// Rules holds the playability thresholds and attempt budgets.
type Rules struct {
	MinMovesLevel      int // first level using LateMinMoves
	EarlyMinMoves      int
	LateMinMoves       int
	ShuffleTries       int // reshuffle attempts in EnsurePlayable
	RerollTries        int // full reroll attempts after a failed reshuffle
	StartRerollTries   int // reroll attempts when a level starts
	ManualShuffleTries int // reshuffle attempts for the player's shuffle
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		MinMovesLevel:      11,
		EarlyMinMoves:      1,
		LateMinMoves:       6,
		ShuffleTries:       220,
		RerollTries:        520,
		StartRerollTries:   700,
		ManualShuffleTries: 260,
	}
}

// MinMoves returns the legal-move floor for level.
func (r Rules) MinMoves(level int) int {
	if level >= r.MinMovesLevel {
		return r.LateMinMoves
	}
	return r.EarlyMinMoves
}

// MinMoves returns the default legal-move floor for level: 6 from level 11
// onward, otherwise 1.
func MinMoves(level int) int {
	return DefaultRules().MinMoves(level)
}

// swapDirs are the canonical swap directions; left and up are covered by
// the paired cell.
var swapDirs = [2]Coord{{Col: 1, Row: 0}, {Col: 0, Row: 1}}

// forEachMove simulates every right/down swap of two non-chest tiles and
// calls fn for each one that produces a match. Iteration stops when fn
// returns false.
func forEachMove(b Board, fn func(m Move) bool) {
	grid := b.Grid()
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			cur := grid[r][c]
			if !matchable(cur) {
				continue
			}
			for _, d := range swapDirs {
				nc, nr := c+d.Col, r+d.Row
				if nc >= b.Size || nr >= b.Size || !b.Mask.Active(nc, nr) {
					continue
				}
				other := grid[nr][nc]
				if !matchable(other) {
					continue
				}

				grid[r][c], grid[nr][nc] = other, cur
				hit := gridHasMatch(grid, b.Size)
				grid[r][c], grid[nr][nc] = cur, other

				if hit && !fn(Move{From: At(c, r), To: At(nc, nr), FromKind: cur.Kind, ToKind: other.Kind}) {
					return
				}
			}
		}
	}
}

// CountPossibleMoves returns the number of adjacent swaps that would
// create at least one match.
func CountPossibleMoves(b Board) int {
	n := 0
	forEachMove(b, func(Move) bool {
		n++
		return true
	})
	return n
}

// FindFirstMove returns the first legal swap in row-major scan order.
func FindFirstMove(b Board) (Move, bool) {
	var found Move
	ok := false
	forEachMove(b, func(m Move) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// HasAnyMove reports whether at least one legal swap exists.
func HasAnyMove(b Board) bool {
	_, ok := FindFirstMove(b)
	return ok
}

// IsPlayable reports whether b has no standing match and at least
// minMoves legal swaps.
func IsPlayable(b Board, minMoves int) bool {
	if HasMatch(b) {
		return false
	}
	if minMoves <= 1 {
		return HasAnyMove(b)
	}
	return CountPossibleMoves(b) >= minMoves
}

// RerollPlayable generates fresh chest-free boards until one is playable.
// On exhaustion the last candidate is returned.
func RerollPlayable(size int, mask Mask, palette []Kind, gen *Generator, minMoves, tries int) Board {
	if tries < 1 {
		tries = 1
	}
	var last Board
	for i := 0; i < tries; i++ {
		last = gen.Fill(size, mask, palette, 0)
		if IsPlayable(last, minMoves) {
			return last
		}
	}
	return last
}

// ShuffleToPlayable permutes the existing tiles over the active cells until
// the board is playable. Ids, kinds and powers are preserved. If the board
// is inconsistent or the attempts run out it falls back to a full reroll.
func ShuffleToPlayable(b Board, gen *Generator, palette []Kind, minMoves, tries, rerollTries int) Board {
	cells := b.Mask.Cells()
	if len(cells) <= 1 {
		return b
	}

	base := make([]Tile, 0, len(b.Tiles))
	for _, t := range b.Tiles {
		if b.Mask.Active(t.Col, t.Row) && t.Col < b.Size && t.Row < b.Size {
			base = append(base, t)
		}
	}
	if len(base) != len(cells) {
		return RerollPlayable(b.Size, b.Mask, palette, gen, minMoves, rerollTries)
	}

	src := gen.Source()
	pos := make([]Coord, len(cells))
	for i := 0; i < tries; i++ {
		copy(pos, cells)
		for j := len(pos) - 1; j > 0; j-- {
			k := src.Intn(j + 1)
			pos[j], pos[k] = pos[k], pos[j]
		}

		candidate := Board{Size: b.Size, Mask: b.Mask, Tiles: make([]Tile, len(base))}
		for j, t := range base {
			t.Col, t.Row = pos[j].Col, pos[j].Row
			candidate.Tiles[j] = t
		}
		if IsPlayable(candidate, minMoves) {
			return candidate
		}
	}
	return RerollPlayable(b.Size, b.Mask, palette, gen, minMoves, rerollTries)
}

// EnsurePlayable returns b unchanged when it is consistent and already
// playable for level, otherwise a reshuffle of it, otherwise a full reroll.
// It never fails: on total exhaustion the last reroll candidate is returned.
func EnsurePlayable(b Board, level int, gen *Generator, palette []Kind, rules Rules) Board {
	minMoves := rules.MinMoves(level)
	if b.Consistent() && IsPlayable(b, minMoves) {
		return b
	}

	shuffled := ShuffleToPlayable(b, gen, palette, minMoves, rules.ShuffleTries, rules.RerollTries)
	if IsPlayable(shuffled, minMoves) {
		return shuffled
	}
	return RerollPlayable(b.Size, b.Mask, palette, gen, minMoves, rules.RerollTries)
}
