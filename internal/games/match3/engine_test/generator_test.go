package engine_test

import (
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

func TestMulberry32Sequence(t *testing.T) {
	m := engine.NewMulberry32(1)
	want := []uint32{2693262067, 11749833, 2265367787}
	for i, w := range want {
		if got := m.Next(); got != w {
			t.Errorf("Next() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestPaletteForLevel(t *testing.T) {
	tests := []struct {
		level int
		count int
		want  []engine.Kind
	}{
		{1, 5, []engine.Kind{engine.KindSilver, engine.KindAmethyst, engine.KindBlood, engine.KindOnyx, engine.KindRuby}},
		{2, 5, []engine.Kind{engine.KindSilver, engine.KindBlood, engine.KindOnyx, engine.KindRuby, engine.KindAmethyst}},
		{1, 3, []engine.Kind{engine.KindSilver, engine.KindAmethyst, engine.KindBlood}},
		{1, 0, []engine.Kind{engine.KindSilver}},
		{1, 99, []engine.Kind{engine.KindSilver, engine.KindAmethyst, engine.KindBlood, engine.KindOnyx, engine.KindRuby}},
	}

	for _, tt := range tests {
		got := engine.PaletteForLevel(tt.level, tt.count)
		if len(got) != len(tt.want) {
			t.Errorf("PaletteForLevel(%d, %d) = %v, want %v", tt.level, tt.count, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("PaletteForLevel(%d, %d) = %v, want %v", tt.level, tt.count, got, tt.want)
				break
			}
		}
	}
}

func TestPaletteForLevelDeterministic(t *testing.T) {
	for level := 1; level <= 60; level++ {
		a := engine.PaletteForLevel(level, 4)
		b := engine.PaletteForLevel(level, 4)
		seen := map[engine.Kind]bool{}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("level %d: palettes differ: %v vs %v", level, a, b)
			}
			if seen[a[i]] {
				t.Fatalf("level %d: duplicate kind %v in %v", level, a[i], a)
			}
			if a[i] == engine.KindChest {
				t.Fatalf("level %d: chest in palette", level)
			}
			seen[a[i]] = true
		}
	}
}

func TestCreateTile(t *testing.T) {
	gen := engine.NewGenerator(engine.NewSource(5))

	chest := gen.CreateTile(2, 3, engine.AllKinds, 1)
	if !chest.IsChest() {
		t.Errorf("CreateTile(chance=1).Kind = %v, want chest", chest.Kind)
	}
	if chest.Col != 2 || chest.Row != 3 {
		t.Errorf("CreateTile position = %v, want (2,3)", chest.Pos())
	}
	if chest.Power != engine.PowerNone {
		t.Errorf("chest.Power = %v, want none", chest.Power)
	}

	palette := []engine.Kind{engine.KindOnyx, engine.KindRuby}
	for i := 0; i < 200; i++ {
		tile := gen.CreateTile(0, 0, palette, 0)
		if tile.Kind != engine.KindOnyx && tile.Kind != engine.KindRuby {
			t.Fatalf("CreateTile kind = %v, want one of %v", tile.Kind, palette)
		}
		if len(tile.ID) != 9 {
			t.Fatalf("len(ID) = %d, want 9", len(tile.ID))
		}
	}

	fallback := gen.CreateTile(0, 0, nil, 0)
	found := false
	for _, k := range engine.AllKinds {
		if fallback.Kind == k {
			found = true
		}
	}
	if !found {
		t.Errorf("CreateTile(nil palette).Kind = %v, want a global kind", fallback.Kind)
	}
}

func TestFill(t *testing.T) {
	mask := engine.ParseMask([]string{
		"#####",
		"##.##",
		"#...#",
		"##.##",
		"#####",
	})
	gen := engine.NewGenerator(engine.NewSource(11))
	b := gen.Fill(5, mask, engine.AllKinds, 0.1)

	if len(b.Tiles) != mask.ActiveCount() {
		t.Errorf("len(Tiles) = %d, want %d", len(b.Tiles), mask.ActiveCount())
	}
	if !b.Consistent() {
		t.Error("filled board not consistent")
	}
	seen := map[string]bool{}
	for _, tile := range b.Tiles {
		if seen[tile.ID] {
			t.Errorf("duplicate id %s", tile.ID)
		}
		seen[tile.ID] = true
	}
}

func TestParseMaskRoundTrip(t *testing.T) {
	rows := []string{
		"#.#",
		"###",
		".#.",
	}
	m := engine.ParseMask(rows)
	if got := m.ActiveCount(); got != 6 {
		t.Errorf("ActiveCount() = %d, want 6", got)
	}
	back := m.Rows()
	for i := range rows {
		if back[i] != rows[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, back[i], rows[i])
		}
	}
	if m.Active(5, 0) || m.Active(-1, 0) {
		t.Error("out-of-range cell reported active")
	}
}
