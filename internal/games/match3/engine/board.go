// Package engine implements the deterministic match-3 board logic:
// tile generation, match detection, power tiles, gravity and the
// playability guarantees. Every function here is pure over the Board
// passed in; nothing retains references between calls.
package engine

import "fmt"

// Coord is a board cell position. Col grows to the right, Row grows downward.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// At is a convenience constructor for Coord.
func At(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Adjacent reports whether other is an orthogonal neighbor of c.
func (c Coord) Adjacent(other Coord) bool {
	dc := c.Col - other.Col
	dr := c.Row - other.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}

// Kind identifies the gem type of a tile.
type Kind string

// Gem kinds. KindChest is the obstacle kind: it never matches and never
// carries a power.
const (
	KindRuby     Kind = "ruby"
	KindBlood    Kind = "blood"
	KindAmethyst Kind = "amethyst"
	KindOnyx     Kind = "onyx"
	KindSilver   Kind = "silver"
	KindChest    Kind = "chest"
)

// AllKinds is the global matchable palette in canonical order.
var AllKinds = []Kind{KindRuby, KindBlood, KindAmethyst, KindOnyx, KindSilver}

// Power is the special effect a tile may carry.
type Power uint8

const (
	PowerNone Power = iota
	PowerRowClear
	PowerColumnClear
	PowerAreaBomb
	PowerRainbow // reserved, never created
	PowerMega    // reserved, never created
)

// String returns the power name.
func (p Power) String() string {
	switch p {
	case PowerNone:
		return "none"
	case PowerRowClear:
		return "stripe_h"
	case PowerColumnClear:
		return "stripe_v"
	case PowerAreaBomb:
		return "bomb"
	case PowerRainbow:
		return "rainbow"
	case PowerMega:
		return "mega"
	default:
		return "unknown"
	}
}

// MarshalText encodes the power by name.
func (p Power) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a power name.
func (p *Power) UnmarshalText(text []byte) error {
	for v := PowerNone; v <= PowerMega; v++ {
		if v.String() == string(text) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("engine: unknown power %q", text)
}

// Glyph returns the character used to draw the power overlay.
func (p Power) Glyph() rune {
	switch p {
	case PowerRowClear:
		return '='
	case PowerColumnClear:
		return '|'
	case PowerAreaBomb:
		return '*'
	case PowerRainbow:
		return '@'
	case PowerMega:
		return '#'
	default:
		return ' '
	}
}

// Tile is a single gem on the board.
type Tile struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Power Power  `json:"power"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
}

// Pos returns the tile position.
func (t Tile) Pos() Coord {
	return Coord{Col: t.Col, Row: t.Row}
}

// IsChest reports whether the tile is a chest.
func (t Tile) IsChest() bool {
	return t.Kind == KindChest
}

// Mask marks playable cells. Indexed [row][col].
type Mask [][]bool

// FullMask returns a size x size mask with every cell active.
func FullMask(size int) Mask {
	m := make(Mask, size)
	for r := range m {
		m[r] = make([]bool, size)
		for c := range m[r] {
			m[r][c] = true
		}
	}
	return m
}

// ParseMask builds a mask from rows where '#' or 'x' mark active cells
// and anything else marks a hole.
func ParseMask(rows []string) Mask {
	m := make(Mask, len(rows))
	for r, line := range rows {
		m[r] = make([]bool, len(rows))
		for c, ch := range line {
			if c >= len(rows) {
				break
			}
			m[r][c] = ch == '#' || ch == 'x' || ch == 'X'
		}
	}
	return m
}

// Active reports whether (col, row) is a playable cell.
// Out-of-bounds coordinates are inactive.
func (m Mask) Active(col, row int) bool {
	if row < 0 || row >= len(m) {
		return false
	}
	if col < 0 || col >= len(m[row]) {
		return false
	}
	return m[row][col]
}

// ActiveCount returns the number of playable cells.
func (m Mask) ActiveCount() int {
	n := 0
	for _, row := range m {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// Cells returns all active cells in row-major order.
func (m Mask) Cells() []Coord {
	cells := make([]Coord, 0, m.ActiveCount())
	for r, row := range m {
		for c, on := range row {
			if on {
				cells = append(cells, Coord{Col: c, Row: r})
			}
		}
	}
	return cells
}

// Rows renders the mask as '#'/'.' strings, the inverse of ParseMask.
func (m Mask) Rows() []string {
	out := make([]string, len(m))
	for r, row := range m {
		buf := make([]byte, len(row))
		for c, on := range row {
			if on {
				buf[c] = '#'
			} else {
				buf[c] = '.'
			}
		}
		out[r] = string(buf)
	}
	return out
}

// Board is the set of live tiles on a size x size grid restricted by Mask.
type Board struct {
	Size  int
	Mask  Mask
	Tiles []Tile
}

// Clone returns a deep copy of the tile list. The mask is shared since it
// is never mutated during play.
func (b Board) Clone() Board {
	tiles := make([]Tile, len(b.Tiles))
	copy(tiles, b.Tiles)
	return Board{Size: b.Size, Mask: b.Mask, Tiles: tiles}
}

// Grid indexes tiles by cell. Tiles on inactive or out-of-range cells are
// dropped; if two tiles claim a cell the later one wins.
func (b Board) Grid() [][]*Tile {
	g := make([][]*Tile, b.Size)
	for r := range g {
		g[r] = make([]*Tile, b.Size)
	}
	for i := range b.Tiles {
		t := &b.Tiles[i]
		if !b.Mask.Active(t.Col, t.Row) || t.Row >= b.Size || t.Col >= b.Size {
			continue
		}
		g[t.Row][t.Col] = t
	}
	return g
}

// TileAt returns the tile at (col, row), if any.
func (b Board) TileAt(col, row int) (Tile, bool) {
	if !b.Mask.Active(col, row) {
		return Tile{}, false
	}
	for _, t := range b.Tiles {
		if t.Col == col && t.Row == row {
			return t, true
		}
	}
	return Tile{}, false
}

// Find returns the tile with the given id.
func (b Board) Find(id string) (Tile, bool) {
	for _, t := range b.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// Consistent reports whether every active cell holds exactly one tile and
// no tile sits on a hole.
func (b Board) Consistent() bool {
	if len(b.Tiles) != b.Mask.ActiveCount() {
		return false
	}
	seen := make(map[Coord]bool, len(b.Tiles))
	for _, t := range b.Tiles {
		if !b.Mask.Active(t.Col, t.Row) {
			return false
		}
		p := t.Pos()
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// without returns the tiles whose ids are not in the removal predicate.
func (b Board) without(remove func(id string) bool) Board {
	kept := make([]Tile, 0, len(b.Tiles))
	for _, t := range b.Tiles {
		if !remove(t.ID) {
			kept = append(kept, t)
		}
	}
	return Board{Size: b.Size, Mask: b.Mask, Tiles: kept}
}

// Remove returns a copy of the board without the given tile ids.
func (b Board) Remove(ids ...string) Board {
	set := NewIDSet(ids...)
	return b.without(set.Has)
}

// Swap returns a copy of the board with the tiles at a and c exchanging
// positions. Empty cells are left alone.
func (b Board) Swap(a, c Coord) Board {
	out := b.Clone()
	for i := range out.Tiles {
		t := &out.Tiles[i]
		switch t.Pos() {
		case a:
			t.Col, t.Row = c.Col, c.Row
		case c:
			t.Col, t.Row = a.Col, a.Row
		}
	}
	return out
}
