package engine_test

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

// kindByLetter maps board-diagram letters to kinds.
var kindByLetter = map[byte]engine.Kind{
	'R': engine.KindRuby,
	'B': engine.KindBlood,
	'A': engine.KindAmethyst,
	'O': engine.KindOnyx,
	'S': engine.KindSilver,
	'C': engine.KindChest,
}

// parseBoard builds a square board from a diagram. '.' is a hole, '_' an
// active empty cell, letters are tiles. Tile ids are "c<col>r<row>".
func parseBoard(rows ...string) engine.Board {
	size := len(rows)
	mask := make(engine.Mask, size)
	b := engine.Board{Size: size}
	for r, line := range rows {
		mask[r] = make([]bool, size)
		for c := 0; c < size && c < len(line); c++ {
			ch := line[c]
			if ch == '.' {
				continue
			}
			mask[r][c] = true
			if ch == '_' {
				continue
			}
			b.Tiles = append(b.Tiles, engine.Tile{
				ID:   id(c, r),
				Kind: kindByLetter[ch],
				Col:  c,
				Row:  r,
			})
		}
	}
	b.Mask = mask
	return b
}

func id(col, row int) string {
	return fmt.Sprintf("c%dr%d", col, row)
}

// setPower returns a copy of b with the tile at (col,row) carrying p.
func setPower(b engine.Board, col, row int, p engine.Power) engine.Board {
	out := b.Clone()
	for i := range out.Tiles {
		if out.Tiles[i].Col == col && out.Tiles[i].Row == row {
			out.Tiles[i].Power = p
		}
	}
	return out
}

func ids(tiles []engine.Tile) []string {
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.ID
	}
	sort.Strings(out)
	return out
}

func setIDs(s engine.IDSet) []string {
	var out []string
	s.Each(func(k string) { out = append(out, k) })
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
