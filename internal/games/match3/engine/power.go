package engine

import "github.com/zyedidia/generic/mapset"

// IDSet is a set of tile ids.
type IDSet = mapset.Set[string]

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := mapset.New[string]()
	for _, id := range ids {
		s.Put(id)
	}
	return s
}

// Creation describes a power tile produced by a match step.
type Creation struct {
	TileID string `json:"tileId"`
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Power  Power  `json:"power"`
}

// ClassifyPower picks at most one power to create from the current matches.
// An L/T/+ intersection (both runs >= 3) makes an area bomb at the cell with
// the largest combined length; otherwise the longest run of four or more
// makes a stripe. Cells are visited in matchOrder and ties go to the first
// one, so a horizontal run beats an equally long vertical one. A chest
// never hosts a power.
func ClassifyPower(b Board) (Creation, bool) {
	h, v := RunLengths(b)
	grid := b.Grid()
	order := matchOrder(b.Size, h, v)

	bestSum := 0
	var bomb *Tile
	for _, at := range order {
		hl, vl := h[at.Row][at.Col], v[at.Row][at.Col]
		if hl >= 3 && vl >= 3 && hl+vl > bestSum {
			bestSum = hl + vl
			bomb = grid[at.Row][at.Col]
		}
	}
	if bomb != nil && !bomb.IsChest() {
		return Creation{TileID: bomb.ID, Col: bomb.Col, Row: bomb.Row, Power: PowerAreaBomb}, true
	}

	bestLen := 0
	var stripe *Tile
	power := PowerNone
	for _, at := range order {
		hl, vl := h[at.Row][at.Col], v[at.Row][at.Col]
		if hl >= 4 && hl > bestLen {
			bestLen, stripe, power = hl, grid[at.Row][at.Col], PowerRowClear
		}
		if vl >= 4 && vl > bestLen {
			bestLen, stripe, power = vl, grid[at.Row][at.Col], PowerColumnClear
		}
	}
	if stripe != nil && !stripe.IsChest() {
		return Creation{TileID: stripe.ID, Col: stripe.Col, Row: stripe.Row, Power: power}, true
	}

	return Creation{}, false
}

// matchOrder lists matched cells: every cell of a horizontal run in
// row-major order, then cells only in a vertical run in column-major order.
func matchOrder(size int, h, v [][]int) []Coord {
	var order []Coord
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if h[r][c] >= 3 {
				order = append(order, At(c, r))
			}
		}
	}
	for c := 0; c < size; c++ {
		for r := 0; r < size; r++ {
			if v[r][c] >= 3 && h[r][c] < 3 {
				order = append(order, At(c, r))
			}
		}
	}
	return order
}

// ExpandClears grows clear through chained power activations. Every power
// tile in the set adds its footprint (row, column or 3x3 area, restricted
// to active cells) and is expanded at most once. The set is modified in
// place and returned.
func ExpandClears(b Board, clear IDSet) IDSet {
	grid := b.Grid()
	byID := make(map[string]*Tile, len(b.Tiles))
	for i := range b.Tiles {
		byID[b.Tiles[i].ID] = &b.Tiles[i]
	}

	add := func(col, row int) {
		if !b.Mask.Active(col, row) || row >= b.Size || col >= b.Size {
			return
		}
		if t := grid[row][col]; t != nil {
			clear.Put(t.ID)
		}
	}

	visited := mapset.New[string]()
	queue := sortedIDs(b, clear)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		t, ok := byID[id]
		if !ok || t.Power == PowerNone || visited.Has(id) {
			continue
		}
		visited.Put(id)

		switch t.Power {
		case PowerRowClear:
			for c := 0; c < b.Size; c++ {
				add(c, t.Row)
			}
		case PowerColumnClear:
			for r := 0; r < b.Size; r++ {
				add(t.Col, r)
			}
		case PowerAreaBomb:
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					add(t.Col+dc, t.Row+dr)
				}
			}
		}

		for _, next := range sortedIDs(b, clear) {
			if !visited.Has(next) {
				queue = append(queue, next)
			}
		}
	}
	return clear
}

// sortedIDs lists the members of set in board order so expansion is
// deterministic regardless of map iteration.
func sortedIDs(b Board, set IDSet) []string {
	out := make([]string, 0, set.Size())
	for _, t := range b.Tiles {
		if set.Has(t.ID) {
			out = append(out, t.ID)
		}
	}
	return out
}

// Step is the outcome of one cascade step before gravity.
type Step struct {
	Cleared []Tile    // tiles removed this step, in board order
	Created *Creation // power created this step, if any
	Board   Board     // board after removal, with holes left by cleared tiles
}

// ResolveStep detects matches, creates at most one power tile and expands
// the clear set through power chains. The power host survives with its
// kind unchanged. It returns false when the board has no matches.
func ResolveStep(b Board) (Step, bool) {
	matches := FindMatches(b)
	if len(matches) == 0 {
		return Step{Board: b}, false
	}

	work := b.Clone()
	clear := NewIDSet()
	for _, t := range matches {
		clear.Put(t.ID)
	}

	var created *Creation
	if cr, ok := ClassifyPower(work); ok {
		created = &cr
		for i := range work.Tiles {
			if work.Tiles[i].ID == cr.TileID {
				work.Tiles[i].Power = cr.Power
			}
		}
		clear = minus(clear, cr.TileID)
	}

	ExpandClears(work, clear)
	return clearTiles(work, clear, created), true
}

// ActivatePowers clears the given power tiles directly, without a run
// match, and expands through chains. Tiles without a power are ignored.
func ActivatePowers(b Board, ids ...string) (Step, bool) {
	clear := NewIDSet()
	for _, id := range ids {
		if t, ok := b.Find(id); ok && t.Power != PowerNone {
			clear.Put(id)
		}
	}
	if clear.Size() == 0 {
		return Step{Board: b}, false
	}
	work := b.Clone()
	ExpandClears(work, clear)
	return clearTiles(work, clear, nil), true
}

func clearTiles(b Board, clear IDSet, created *Creation) Step {
	var cleared []Tile
	for _, t := range b.Tiles {
		if clear.Has(t.ID) {
			cleared = append(cleared, t)
		}
	}
	return Step{
		Cleared: cleared,
		Created: created,
		Board:   b.without(clear.Has),
	}
}

// minus returns a copy of set without id.
func minus(set IDSet, id string) IDSet {
	out := mapset.New[string]()
	set.Each(func(k string) {
		if k != id {
			out.Put(k)
		}
	})
	return out
}
