package engine_test

import (
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

func TestApplyGravity(t *testing.T) {
	b := parseBoard(
		"RA_",
		"_B_",
		"O_S",
	)
	gen := engine.NewGenerator(engine.NewSource(42))
	palette := []engine.Kind{engine.KindOnyx}

	out := engine.ApplyGravity(b, gen, palette, 0)
	if !out.Consistent() {
		t.Fatal("board not consistent after gravity")
	}

	moved := []struct {
		id   string
		want engine.Coord
	}{
		{"c0r0", engine.At(0, 1)},
		{"c0r2", engine.At(0, 2)},
		{"c1r0", engine.At(1, 1)},
		{"c1r1", engine.At(1, 2)},
		{"c2r2", engine.At(2, 2)},
	}
	for _, m := range moved {
		tile, ok := out.Find(m.id)
		if !ok {
			t.Errorf("tile %s lost", m.id)
			continue
		}
		if tile.Pos() != m.want {
			t.Errorf("tile %s at %v, want %v", m.id, tile.Pos(), m.want)
		}
	}

	refills := []engine.Coord{engine.At(0, 0), engine.At(1, 0), engine.At(2, 0), engine.At(2, 1)}
	for _, c := range refills {
		tile, ok := out.TileAt(c.Col, c.Row)
		if !ok {
			t.Errorf("no refill at %v", c)
			continue
		}
		if _, old := b.Find(tile.ID); old {
			t.Errorf("refill at %v reused id %s", c, tile.ID)
		}
		if tile.Kind != engine.KindOnyx {
			t.Errorf("refill kind at %v = %v, want %v", c, tile.Kind, engine.KindOnyx)
		}
	}
}

func TestApplyGravityFallsPastHole(t *testing.T) {
	b := parseBoard(
		"RBA",
		"O.S",
		"A_B",
	)
	gen := engine.NewGenerator(engine.NewSource(1))

	out := engine.ApplyGravity(b, gen, engine.AllKinds, 0)
	if !out.Consistent() {
		t.Fatal("board not consistent after gravity")
	}
	tile, ok := out.Find("c1r0")
	if !ok {
		t.Fatal("tile c1r0 lost")
	}
	if tile.Pos() != engine.At(1, 2) {
		t.Errorf("c1r0 at %v, want %v", tile.Pos(), engine.At(1, 2))
	}
	if _, ok := out.TileAt(1, 1); ok {
		t.Error("hole received a tile")
	}
}

func TestApplyGravityFullBoardUnchanged(t *testing.T) {
	b := parseBoard(
		"RBA",
		"BAO",
		"AOS",
	)
	out := engine.ApplyGravity(b, engine.NewGenerator(engine.NewSource(3)), engine.AllKinds, 0)
	for _, tile := range b.Tiles {
		got, ok := out.Find(tile.ID)
		if !ok || got.Pos() != tile.Pos() {
			t.Errorf("tile %s moved to %v, want %v", tile.ID, got.Pos(), tile.Pos())
		}
	}
}

func TestChestChance(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 0.02},
		{9, 0.02},
		{10, 0.2},
		{20, 0.2},
		{21, 0.02},
		{0, 0.02},
	}
	for _, tt := range tests {
		if got := engine.ChestChance(tt.level, 0.2, 0.02); got != tt.want {
			t.Errorf("ChestChance(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
