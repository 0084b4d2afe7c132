package engine

import "math/rand"

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a seeded math/rand source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Mulberry32 is a small deterministic 32-bit generator. Palettes are keyed
// on it so a level offers the same kinds in every session.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a generator with the given seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next returns the next 32-bit value.
func (m *Mulberry32) Next() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Next()) / 4294967296.0
}

// Intn returns a value in [0, n).
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(m.Float64() * float64(n))
}

// Palette seeding constants.
const (
	paletteSeedOffset     = 100000
	paletteSeedMultiplier = 1337
)

// PaletteForLevel returns the level's kind palette: a seeded shuffle of
// AllKinds truncated to count, with count clamped to [1, len(AllKinds)].
func PaletteForLevel(level, count int) []Kind {
	rng := NewMulberry32(uint32(paletteSeedOffset + level*paletteSeedMultiplier))

	kinds := make([]Kind, len(AllKinds))
	copy(kinds, AllKinds)
	for i := len(kinds) - 1; i > 0; i-- {
		j := int(rng.Float64() * float64(i+1))
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}

	if count < 1 {
		count = 1
	}
	if count > len(kinds) {
		count = len(kinds)
	}
	return kinds[:count]
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// idLength matches nine base-36 digits, about 46 bits of entropy.
const idLength = 9

// Generator creates tiles from a random source.
type Generator struct {
	src Source
}

// NewGenerator wraps src. A nil src falls back to a time-independent
// zero-seeded source so callers never panic.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewSource(0)
	}
	return &Generator{src: src}
}

// Source exposes the underlying random source for shuffles.
func (g *Generator) Source() Source {
	return g.src
}

// NewID returns a fresh random base-36 tile id.
func (g *Generator) NewID() string {
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[g.src.Intn(len(idAlphabet))]
	}
	return string(buf)
}

// CreateTile produces a tile at (col, row). With probability chestChance
// it is a chest, otherwise a uniform pick from palette. An empty palette
// falls back to AllKinds.
func (g *Generator) CreateTile(col, row int, palette []Kind, chestChance float64) Tile {
	t := Tile{ID: g.NewID(), Col: col, Row: row}
	if chestChance > 0 && g.src.Float64() < chestChance {
		t.Kind = KindChest
		return t
	}
	pool := palette
	if len(pool) == 0 {
		pool = AllKinds
	}
	t.Kind = pool[g.src.Intn(len(pool))]
	return t
}

// Fill returns a board with a fresh tile on every active cell.
func (g *Generator) Fill(size int, mask Mask, palette []Kind, chestChance float64) Board {
	b := Board{Size: size, Mask: mask, Tiles: make([]Tile, 0, mask.ActiveCount())}
	for _, c := range mask.Cells() {
		b.Tiles = append(b.Tiles, g.CreateTile(c.Col, c.Row, palette, chestChance))
	}
	return b
}
