package engine_test

import (
	"sort"
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
)

func TestResolveStepStripe(t *testing.T) {
	b := parseBoard(
		"RRRRB",
		"BASOA",
		"AOBSO",
		"SBOAB",
		"OSABS",
	)

	step, ok := engine.ResolveStep(b)
	if !ok {
		t.Fatal("ResolveStep() ok = false, want true")
	}
	if step.Created == nil {
		t.Fatal("Created = nil, want a stripe")
	}
	if step.Created.Power != engine.PowerRowClear {
		t.Errorf("Created.Power = %v, want %v", step.Created.Power, engine.PowerRowClear)
	}
	if step.Created.TileID != "c0r0" {
		t.Errorf("Created.TileID = %q, want %q", step.Created.TileID, "c0r0")
	}

	want := []string{"c1r0", "c2r0", "c3r0"}
	if got := ids(step.Cleared); !equalStrings(got, want) {
		t.Errorf("Cleared = %v, want %v", got, want)
	}

	host, ok := step.Board.Find("c0r0")
	if !ok {
		t.Fatal("host tile missing after step")
	}
	if host.Kind != engine.KindRuby {
		t.Errorf("host.Kind = %v, want %v", host.Kind, engine.KindRuby)
	}
	if host.Power != engine.PowerRowClear {
		t.Errorf("host.Power = %v, want %v", host.Power, engine.PowerRowClear)
	}
	if len(step.Board.Tiles) != 22 {
		t.Errorf("len(Tiles) = %d, want 22", len(step.Board.Tiles))
	}
}

func TestResolveStepBomb(t *testing.T) {
	b := parseBoard(
		"RBAOS",
		"RAOSB",
		"RRRBA",
		"BOSAO",
		"ASBOS",
	)

	step, ok := engine.ResolveStep(b)
	if !ok {
		t.Fatal("ResolveStep() ok = false, want true")
	}
	if step.Created == nil || step.Created.Power != engine.PowerAreaBomb {
		t.Fatalf("Created = %+v, want area bomb", step.Created)
	}
	if step.Created.TileID != "c0r2" {
		t.Errorf("Created.TileID = %q, want %q", step.Created.TileID, "c0r2")
	}

	want := []string{"c0r0", "c0r1", "c1r2", "c2r2"}
	if got := ids(step.Cleared); !equalStrings(got, want) {
		t.Errorf("Cleared = %v, want %v", got, want)
	}
}

func TestSwapRunOfFive(t *testing.T) {
	b := parseBoard(
		"RRBRR",
		"BARSA",
		"AOBSO",
		"SBOAB",
		"OSABS",
	)
	if engine.HasMatch(b) {
		t.Fatal("precondition: board already has a match")
	}

	swapped := b.Swap(engine.At(2, 0), engine.At(2, 1))
	step, ok := engine.ResolveStep(swapped)
	if !ok {
		t.Fatal("ResolveStep() ok = false, want true")
	}
	if step.Created == nil {
		t.Fatal("Created = nil, want a stripe")
	}
	if step.Created.Power != engine.PowerRowClear {
		t.Errorf("Created.Power = %v, want %v", step.Created.Power, engine.PowerRowClear)
	}
	if len(step.Cleared) != 4 {
		t.Errorf("len(Cleared) = %d, want 4", len(step.Cleared))
	}

	powered := 0
	for _, tile := range step.Board.Tiles {
		if tile.Power != engine.PowerNone {
			powered++
			if tile.Kind != engine.KindRuby {
				t.Errorf("host kind = %v, want %v", tile.Kind, engine.KindRuby)
			}
		}
	}
	if powered != 1 {
		t.Errorf("powered tiles = %d, want 1", powered)
	}
}

func TestClassifyPowerNone(t *testing.T) {
	b := parseBoard(
		"RRR",
		"BAS",
		"ASB",
	)
	if _, ok := engine.ClassifyPower(b); ok {
		t.Error("ClassifyPower() ok = true for a run of three, want false")
	}
}

func TestClassifyPowerStripeTies(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		want  string
		power engine.Power
	}{
		{
			name: "equal runs go to the horizontal one",
			rows: []string{
				"RASOAS",
				"RSOASO",
				"RASOAS",
				"RSOASO",
				"AOASOA",
				"SABBBB",
			},
			want:  "c2r5",
			power: engine.PowerRowClear,
		},
		{
			name: "longer vertical run wins",
			rows: []string{
				"RASOAS",
				"RSOASO",
				"RASOAS",
				"RSOASO",
				"ROASOA",
				"SABBBB",
			},
			want:  "c0r0",
			power: engine.PowerColumnClear,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.ClassifyPower(parseBoard(tt.rows...))
			if !ok {
				t.Fatal("ClassifyPower() ok = false, want a stripe")
			}
			if got.TileID != tt.want || got.Power != tt.power {
				t.Errorf("ClassifyPower() = %s %v, want %s %v", got.TileID, got.Power, tt.want, tt.power)
			}
		})
	}
}

func TestExpandClears(t *testing.T) {
	base := parseBoard(
		"RBAOS",
		"BAOSR",
		"AOSRB",
		"OSRBA",
		"SRBAO",
	)

	tests := []struct {
		name  string
		board engine.Board
		start []string
		want  []string
	}{
		{
			name:  "plain tile adds nothing",
			board: base,
			start: []string{"c2r2"},
			want:  []string{"c2r2"},
		},
		{
			name:  "row clear",
			board: setPower(base, 0, 1, engine.PowerRowClear),
			start: []string{"c0r1"},
			want:  []string{"c0r1", "c1r1", "c2r1", "c3r1", "c4r1"},
		},
		{
			name:  "column clear",
			board: setPower(base, 3, 0, engine.PowerColumnClear),
			start: []string{"c3r0"},
			want:  []string{"c3r0", "c3r1", "c3r2", "c3r3", "c3r4"},
		},
		{
			name:  "bomb in corner",
			board: setPower(base, 0, 0, engine.PowerAreaBomb),
			start: []string{"c0r0"},
			want:  []string{"c0r0", "c0r1", "c1r0", "c1r1"},
		},
		{
			name:  "row clear chains into bomb",
			board: setPower(setPower(base, 0, 1, engine.PowerRowClear), 3, 1, engine.PowerAreaBomb),
			start: []string{"c0r1"},
			want: []string{
				"c0r1", "c1r1", "c2r1", "c3r1", "c4r1",
				"c2r0", "c3r0", "c4r0",
				"c2r2", "c3r2", "c4r2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := setIDs(engine.ExpandClears(tt.board, engine.NewIDSet(tt.start...)))
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			if !equalStrings(got, want) {
				t.Errorf("ExpandClears() = %v, want %v", got, want)
			}
		})
	}
}

func TestExpandClearsStopsAtHoles(t *testing.T) {
	b := setPower(parseBoard(
		"RBAOS",
		"BA.SR",
		"AOSRB",
		"OSRBA",
		"SRBAO",
	), 0, 1, engine.PowerRowClear)

	got := setIDs(engine.ExpandClears(b, engine.NewIDSet("c0r1")))
	want := []string{"c0r1", "c1r1", "c3r1", "c4r1"}
	if !equalStrings(got, want) {
		t.Errorf("ExpandClears() = %v, want %v", got, want)
	}
}

func TestExpandClearsMutualPowers(t *testing.T) {
	// Two stripes that reach each other must each expand once and terminate.
	b := setPower(setPower(parseBoard(
		"RBA",
		"BAO",
		"AOS",
	), 0, 0, engine.PowerRowClear), 2, 0, engine.PowerColumnClear)

	got := setIDs(engine.ExpandClears(b, engine.NewIDSet("c0r0")))
	want := []string{"c0r0", "c1r0", "c2r0", "c2r1", "c2r2"}
	if !equalStrings(got, want) {
		t.Errorf("ExpandClears() = %v, want %v", got, want)
	}
}

func TestActivatePowers(t *testing.T) {
	b := setPower(parseBoard(
		"RBAOS",
		"BAOSR",
		"AOSRB",
		"OSRBA",
		"SRBAO",
	), 2, 2, engine.PowerAreaBomb)

	step, ok := engine.ActivatePowers(b, "c2r2", "c0r0")
	if !ok {
		t.Fatal("ActivatePowers() ok = false, want true")
	}
	if step.Created != nil {
		t.Errorf("Created = %+v, want nil", step.Created)
	}
	if len(step.Cleared) != 9 {
		t.Errorf("len(Cleared) = %d, want 9", len(step.Cleared))
	}
	if len(step.Board.Tiles) != 16 {
		t.Errorf("len(Tiles) = %d, want 16", len(step.Board.Tiles))
	}

	if _, ok := engine.ActivatePowers(b, "c0r0"); ok {
		t.Error("ActivatePowers() on a plain tile ok = true, want false")
	}
}
