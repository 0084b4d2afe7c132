package engine_test

import (
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

// deadBoard has no match and no legal swap.
func deadBoard() engine.Board {
	return parseBoard(
		"RBAO",
		"AORB",
		"RBAO",
		"AORB",
	)
}

func TestCountPossibleMoves(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{"single move", []string{"RRB", "SAR", "BOS"}, 1},
		{"chest blocks the only move", []string{"RRB", "SAC", "BOS"}, 0},
		{"dead board", []string{"RBAO", "AORB", "RBAO", "AORB"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.CountPossibleMoves(parseBoard(tt.rows...)); got != tt.want {
				t.Errorf("CountPossibleMoves() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindFirstMove(t *testing.T) {
	m, ok := engine.FindFirstMove(parseBoard("RRB", "SAR", "BOS"))
	if !ok {
		t.Fatal("FindFirstMove() ok = false, want true")
	}
	want := engine.Move{
		From:     engine.At(2, 0),
		To:       engine.At(2, 1),
		FromKind: engine.KindBlood,
		ToKind:   engine.KindRuby,
	}
	if m != want {
		t.Errorf("FindFirstMove() = %+v, want %+v", m, want)
	}

	if _, ok := engine.FindFirstMove(deadBoard()); ok {
		t.Error("FindFirstMove(dead) ok = true, want false")
	}
}

func TestIsPlayable(t *testing.T) {
	single := parseBoard("RRB", "SAR", "BOS")
	if !engine.IsPlayable(single, 1) {
		t.Error("IsPlayable(single, 1) = false, want true")
	}
	if engine.IsPlayable(single, 2) {
		t.Error("IsPlayable(single, 2) = true, want false")
	}
	if engine.IsPlayable(parseBoard("RRR", "BAS", "ASB"), 1) {
		t.Error("IsPlayable() with a standing match = true, want false")
	}
}

func TestMinMoves(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 1},
		{10, 1},
		{11, 6},
		{40, 6},
	}
	for _, tt := range tests {
		if got := engine.MinMoves(tt.level); got != tt.want {
			t.Errorf("MinMoves(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestEnsurePlayableKeepsPlayableBoard(t *testing.T) {
	b := parseBoard("RRB", "SAR", "BOS")
	gen := engine.NewGenerator(engine.NewSource(9))

	out := engine.EnsurePlayable(b, 1, gen, engine.PaletteForLevel(1, 5), engine.DefaultRules())
	if got, want := ids(out.Tiles), ids(b.Tiles); !equalStrings(got, want) {
		t.Fatalf("EnsurePlayable changed tiles: %v, want %v", got, want)
	}
	for _, tile := range b.Tiles {
		got, _ := out.Find(tile.ID)
		if got.Pos() != tile.Pos() {
			t.Errorf("tile %s moved to %v, want %v", tile.ID, got.Pos(), tile.Pos())
		}
	}
}

func TestEnsurePlayableRepairsDeadBoard(t *testing.T) {
	gen := engine.NewGenerator(engine.NewSource(9))
	out := engine.EnsurePlayable(deadBoard(), 1, gen, engine.PaletteForLevel(1, 5), engine.DefaultRules())

	if !out.Consistent() {
		t.Fatal("repaired board not consistent")
	}
	if engine.HasMatch(out) {
		t.Error("repaired board has a standing match")
	}
	if engine.CountPossibleMoves(out) < 1 {
		t.Error("repaired board has no legal move")
	}
}

func TestShuffleToPlayablePreservesTiles(t *testing.T) {
	b := setPower(deadBoard(), 1, 1, engine.PowerAreaBomb)
	gen := engine.NewGenerator(engine.NewSource(4))

	out := engine.ShuffleToPlayable(b, gen, engine.AllKinds, 1, 220, 520)
	if got, want := ids(out.Tiles), ids(b.Tiles); !equalStrings(got, want) {
		t.Fatalf("ShuffleToPlayable ids = %v, want %v", got, want)
	}
	for _, tile := range b.Tiles {
		got, _ := out.Find(tile.ID)
		if got.Kind != tile.Kind || got.Power != tile.Power {
			t.Errorf("tile %s = %v/%v, want %v/%v", tile.ID, got.Kind, got.Power, tile.Kind, tile.Power)
		}
	}
	if !engine.IsPlayable(out, 1) {
		t.Error("shuffled board not playable")
	}
}

func TestRerollPlayableStrictFloor(t *testing.T) {
	gen := engine.NewGenerator(engine.NewSource(21))
	rules := engine.DefaultRules()
	mask := engine.FullMask(8)

	b := engine.RerollPlayable(8, mask, engine.PaletteForLevel(15, 5), gen, rules.MinMoves(15), rules.RerollTries)
	if !engine.IsPlayable(b, 6) {
		t.Errorf("RerollPlayable() board has %d moves or a standing match, want >= 6 and none", engine.CountPossibleMoves(b))
	}
	for _, tile := range b.Tiles {
		if tile.IsChest() {
			t.Fatalf("reroll produced a chest at %v", tile.Pos())
		}
	}
}
