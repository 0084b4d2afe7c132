package engine

// FindMatches returns every tile that belongs to a horizontal or vertical
// run of three or more identical non-chest kinds. Holes, empty cells and
// chests end a run. The result is deduplicated and ordered row-major, so
// it does not depend on the order of b.Tiles.
func FindMatches(b Board) []Tile {
	h, v := RunLengths(b)
	grid := b.Grid()

	var out []Tile
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if h[r][c] == 0 && v[r][c] == 0 {
				continue
			}
			out = append(out, *grid[r][c])
		}
	}
	return out
}

// HasMatch reports whether any run of three or more exists.
func HasMatch(b Board) bool {
	return gridHasMatch(b.Grid(), b.Size)
}

func gridHasMatch(grid [][]*Tile, n int) bool {
	for r := 0; r < n; r++ {
		if runInLine(n, func(i int) *Tile { return grid[r][i] }) {
			return true
		}
	}
	for c := 0; c < n; c++ {
		if runInLine(n, func(i int) *Tile { return grid[i][c] }) {
			return true
		}
	}
	return false
}

// runInLine scans one row or column for a run of three.
func runInLine(n int, at func(i int) *Tile) bool {
	run := 0
	var kind Kind
	for i := 0; i < n; i++ {
		t := at(i)
		if !matchable(t) {
			run = 0
			continue
		}
		if run > 0 && t.Kind == kind {
			run++
		} else {
			kind = t.Kind
			run = 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}

// RunLengths returns, per cell [row][col], the length of the horizontal and
// vertical run of three or more the cell belongs to, or 0.
func RunLengths(b Board) (h, v [][]int) {
	grid := b.Grid()
	h = make([][]int, b.Size)
	v = make([][]int, b.Size)
	for r := range h {
		h[r] = make([]int, b.Size)
		v[r] = make([]int, b.Size)
	}

	for r := 0; r < b.Size; r++ {
		markRuns(b.Size, func(i int) *Tile { return grid[r][i] }, func(i, n int) { h[r][i] = n })
	}
	for c := 0; c < b.Size; c++ {
		markRuns(b.Size, func(i int) *Tile { return grid[i][c] }, func(i, n int) { v[i][c] = n })
	}
	return h, v
}

// markRuns walks a line and calls mark for each cell of every run >= 3.
func markRuns(n int, at func(i int) *Tile, mark func(i, length int)) {
	i := 0
	for i < n {
		t := at(i)
		if !matchable(t) {
			i++
			continue
		}
		j := i + 1
		for j < n {
			u := at(j)
			if !matchable(u) || u.Kind != t.Kind {
				break
			}
			j++
		}
		if length := j - i; length >= 3 {
			for k := i; k < j; k++ {
				mark(k, length)
			}
		}
		i = j
	}
}

// matchable reports whether a cell can take part in a run.
func matchable(t *Tile) bool {
	return t != nil && t.Kind != KindChest
}
