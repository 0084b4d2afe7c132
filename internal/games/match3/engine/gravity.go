package engine

// IsBossLevel reports whether level is a boss level (every 10th).
func IsBossLevel(level int) bool {
	return level > 0 && level%10 == 0
}

// ChestChance returns the refill chest probability for level.
func ChestChance(level int, boss, normal float64) float64 {
	if IsBossLevel(level) {
		return boss
	}
	return normal
}

// ApplyGravity compacts every column toward the bottom and refills the
// remaining active cells from gen. Surviving tiles keep their relative
// order. A tile above a hole drops to the next active cell below it; holes
// never receive a tile.
func ApplyGravity(b Board, gen *Generator, palette []Kind, chestChance float64) Board {
	grid := b.Grid()
	out := Board{Size: b.Size, Mask: b.Mask, Tiles: make([]Tile, 0, b.Mask.ActiveCount())}

	for c := 0; c < b.Size; c++ {
		// Active rows and surviving tiles, bottom to top.
		var rows []int
		var column []Tile
		for r := b.Size - 1; r >= 0; r-- {
			if !b.Mask.Active(c, r) {
				continue
			}
			rows = append(rows, r)
			if t := grid[r][c]; t != nil {
				column = append(column, *t)
			}
		}

		for i, r := range rows {
			if i < len(column) {
				t := column[i]
				t.Col, t.Row = c, r
				out.Tiles = append(out.Tiles, t)
				continue
			}
			out.Tiles = append(out.Tiles, gen.CreateTile(c, r, palette, chestChance))
		}
	}
	return out
}
