package session

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels"
	"github.com/vovakirdan/gemfall/internal/games/match3/levels/formats"
)

var kindByLetter = map[byte]engine.Kind{
	'R': engine.KindRuby,
	'B': engine.KindBlood,
	'A': engine.KindAmethyst,
	'O': engine.KindOnyx,
	'S': engine.KindSilver,
	'C': engine.KindChest,
}

// board builds a full square board from letter rows. Ids are "c<col>r<row>".
func board(rows ...string) engine.Board {
	size := len(rows)
	b := engine.Board{Size: size, Mask: engine.FullMask(size)}
	for r, line := range rows {
		for c := 0; c < size; c++ {
			b.Tiles = append(b.Tiles, engine.Tile{
				ID:   fmt.Sprintf("c%dr%d", c, r),
				Kind: kindByLetter[line[c]],
				Col:  c,
				Row:  r,
			})
		}
	}
	return b
}

func withPower(b engine.Board, col, row int, p engine.Power) engine.Board {
	out := b.Clone()
	for i := range out.Tiles {
		if out.Tiles[i].Col == col && out.Tiles[i].Row == row {
			out.Tiles[i].Power = p
		}
	}
	return out
}

func deadBoard() engine.Board {
	return board(
		"RBAO",
		"AORB",
		"RBAO",
		"AORB",
	)
}

// runOfFive has a single swap at (2,0)-(2,1) that lines up five rubies.
func runOfFive() engine.Board {
	return board(
		"RRBRR",
		"BARSA",
		"AOBSO",
		"SBOAB",
		"OSABS",
	)
}

func newStarted(t *testing.T, opts Options, level int) *Controller {
	t.Helper()
	c := New(opts)
	c.Start(level)
	return c
}

// install replaces the board for scenario tests.
func (c *Controller) install(b engine.Board) {
	c.board = b
	c.selected = nil
	c.state = StateIdle
}

func assertSettled(t *testing.T, c *Controller) {
	t.Helper()
	if !c.board.Consistent() {
		t.Fatal("board not consistent")
	}
	if engine.HasMatch(c.board) {
		t.Fatal("board has a standing match")
	}
	if c.Busy() {
		t.Fatal("in-flight guard still set")
	}
}

func TestStart(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 1)

	if c.State() != StateIdle {
		t.Errorf("State() = %v, want %v", c.State(), StateIdle)
	}
	if c.Moves() != 12 {
		t.Errorf("Moves() = %d, want 12", c.Moves())
	}
	s := c.Snapshot()
	if s.Target != 750 {
		t.Errorf("Target = %d, want 750", s.Target)
	}
	if s.ShuffleUses != 1 {
		t.Errorf("ShuffleUses = %d, want 1", s.ShuffleUses)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, want 0", s.Score)
	}
	if len(s.Tiles) != c.Level().Layout.Mask.ActiveCount() {
		t.Errorf("len(Tiles) = %d, want %d", len(s.Tiles), c.Level().Layout.Mask.ActiveCount())
	}
	if s.Hint == nil {
		t.Error("Hint = nil, want a legal move")
	}
	assertSettled(t, c)
}

func TestStartFullBoard(t *testing.T) {
	cat := levels.NewCatalogue(5)
	full := strings.Repeat("#", 8)
	cat.Add(levels.Override{Spec: formats.Level{
		Level: 1,
		Size:  8,
		Mask:  []string{full, full, full, full, full, full, full, full},
	}})

	for seed := int64(1); seed <= 5; seed++ {
		c := newStarted(t, Options{Seed: seed, Catalogue: cat}, 1)
		b := c.Board()
		if b.Size != 8 || b.Mask.ActiveCount() != 64 {
			t.Fatalf("seed %d: size %d with %d active cells, want 8 with 64", seed, b.Size, b.Mask.ActiveCount())
		}
		if len(b.Tiles) != 64 {
			t.Errorf("seed %d: len(Tiles) = %d, want 64", seed, len(b.Tiles))
		}
		if m := engine.FindMatches(b); len(m) != 0 {
			t.Errorf("seed %d: FindMatches() = %d tiles, want none", seed, len(m))
		}
		if n := engine.CountPossibleMoves(b); n < 1 {
			t.Errorf("seed %d: CountPossibleMoves() = %d, want >= 1", seed, n)
		}
	}
}

func TestStartStrictFloor(t *testing.T) {
	c := newStarted(t, Options{Seed: 3}, 12)
	if n := engine.CountPossibleMoves(c.board); n < 6 {
		t.Errorf("CountPossibleMoves() = %d, want >= 6", n)
	}
	assertSettled(t, c)
}

func TestBonusMoves(t *testing.T) {
	c := newStarted(t, Options{Seed: 1, BonusMoves: 3}, 1)
	if c.Moves() != 15 {
		t.Errorf("Moves() = %d, want 15", c.Moves())
	}
	c = newStarted(t, Options{Seed: 1, BonusMoves: -50}, 1)
	if c.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", c.Moves())
	}
}

func TestTapSelection(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 1)
	c.install(runOfFive())

	tests := []struct {
		tap    engine.Coord
		action Action
		state  State
	}{
		{engine.At(0, 0), ActionSelect, StateSelected},
		{engine.At(0, 0), ActionDeselect, StateIdle},
		{engine.At(0, 0), ActionSelect, StateSelected},
		{engine.At(3, 3), ActionReselect, StateSelected},
		{engine.At(9, 9), ActionNone, StateSelected},
	}
	for i, tt := range tests {
		res := c.Tap(tt.tap)
		if res.Action != tt.action {
			t.Errorf("tap %d at %v: Action = %v, want %v", i, tt.tap, res.Action, tt.action)
		}
		if c.State() != tt.state {
			t.Errorf("tap %d at %v: State = %v, want %v", i, tt.tap, c.State(), tt.state)
		}
	}
	if sel, ok := c.Selected(); !ok || sel != engine.At(3, 3) {
		t.Errorf("Selected() = %v, %v, want (3,3)", sel, ok)
	}
}

func TestTapHoleIgnored(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 1)
	b := runOfFive()
	b.Mask = engine.ParseMask([]string{"#####", "#####", "##.##", "#####", "#####"})
	b = b.Remove("c2r2")
	c.install(b)

	if res := c.Tap(engine.At(2, 2)); res.Action != ActionNone {
		t.Errorf("Tap(hole).Action = %v, want %v", res.Action, ActionNone)
	}
}

func TestMatchingSwap(t *testing.T) {
	c := newStarted(t, Options{Seed: 7}, 1)
	c.install(runOfFive())

	c.Tap(engine.At(2, 0))
	res := c.Tap(engine.At(2, 1))

	if res.Action != ActionSwap {
		t.Fatalf("Action = %v, want %v", res.Action, ActionSwap)
	}
	if c.Moves() != 11 {
		t.Errorf("Moves() = %d, want 11", c.Moves())
	}
	if res.Gained < 45 {
		t.Errorf("Gained = %d, want >= 45", res.Gained)
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection not cleared after swap")
	}

	s := c.Snapshot()
	if len(s.Steps) == 0 {
		t.Fatal("no cascade steps recorded")
	}
	first := s.Steps[0]
	if first.Cleared != 4 || first.Combo != 1 || first.Gained != 40 {
		t.Errorf("Steps[0] = %+v, want 4 cleared, combo 1, 40 points", first)
	}
	if first.Created == nil || first.Created.Power != engine.PowerRowClear {
		t.Errorf("Steps[0].Created = %+v, want a row clear", first.Created)
	}
	for i := 0; i < 4; i++ {
		if s.Pops[i].Value != 10 {
			t.Errorf("Pops[%d].Value = %d, want 10", i, s.Pops[i].Value)
		}
	}
	if s.MovesUsed != 1 {
		t.Errorf("MovesUsed = %d, want 1", s.MovesUsed)
	}
	assertSettled(t, c)
}

func TestCascadeComboScoring(t *testing.T) {
	c := newStarted(t, Options{Seed: 7}, 1)
	c.install(runOfFive())
	c.Tap(engine.At(2, 0))
	c.Tap(engine.At(2, 1))

	total := 5
	for i, st := range c.Snapshot().Steps {
		if st.Combo != i+1 {
			t.Errorf("Steps[%d].Combo = %d, want %d", i, st.Combo, i+1)
		}
		if st.Gained != st.Cleared*10*st.Combo {
			t.Errorf("Steps[%d].Gained = %d, want %d", i, st.Gained, st.Cleared*10*st.Combo)
		}
		total += st.Gained
	}
	if c.Score() != total {
		t.Errorf("Score() = %d, want %d", c.Score(), total)
	}
}

func TestInvalidSwapReverts(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 1)
	b := board("RRB", "SAR", "BOS")
	c.install(b)

	c.Tap(engine.At(0, 0))
	res := c.Tap(engine.At(0, 1))

	if res.Action != ActionRevert {
		t.Fatalf("Action = %v, want %v", res.Action, ActionRevert)
	}
	if res.Repaired {
		t.Error("Repaired = true, want false")
	}
	if c.Moves() != 12 {
		t.Errorf("Moves() = %d, want 12", c.Moves())
	}
	if !reflect.DeepEqual(c.board.Tiles, b.Tiles) {
		t.Error("board changed after a reverted swap")
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, want %v", c.State(), StateIdle)
	}
}

func TestInvalidSwapOnDeadBoardRepairs(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 1)
	c.install(deadBoard())

	c.Tap(engine.At(0, 0))
	res := c.Tap(engine.At(1, 0))

	if res.Action != ActionRevert || !res.Repaired {
		t.Fatalf("Result = %+v, want a repaired revert", res)
	}
	if !engine.HasAnyMove(c.board) {
		t.Error("board still dead after repair")
	}
	assertSettled(t, c)
}

func TestForcedActivation(t *testing.T) {
	tests := []struct {
		name      string
		costsMove bool
		moves     int
	}{
		{"free", false, 12},
		{"costs a move", true, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStarted(t, Options{Seed: 5, ForcedActivationCostsMove: tt.costsMove}, 1)
			c.install(withPower(deadBoard(), 1, 1, engine.PowerAreaBomb))

			c.Tap(engine.At(1, 1))
			res := c.Tap(engine.At(2, 1))

			if res.Action != ActionForced {
				t.Fatalf("Action = %v, want %v", res.Action, ActionForced)
			}
			if c.Moves() != tt.moves {
				t.Errorf("Moves() = %d, want %d", c.Moves(), tt.moves)
			}
			if res.Gained < 9*12 {
				t.Errorf("Gained = %d, want >= %d", res.Gained, 9*12)
			}
			s := c.Snapshot()
			for i := 0; i < 8; i++ {
				if s.Pops[i].Value != 20 {
					t.Errorf("Pops[%d].Value = %d, want 20", i, s.Pops[i].Value)
				}
			}
			if len(s.Flash) < 9 {
				t.Errorf("len(Flash) = %d, want >= 9", len(s.Flash))
			}
			assertSettled(t, c)
		})
	}
}

func TestChestTap(t *testing.T) {
	c := newStarted(t, Options{Seed: 2}, 1)
	c.install(board(
		"RBAO",
		"AORB",
		"RBCO",
		"AORB",
	))
	c.Tap(engine.At(0, 0))

	res := c.Tap(engine.At(2, 2))
	if res.Action != ActionChest {
		t.Fatalf("Action = %v, want %v", res.Action, ActionChest)
	}
	if res.Gained < 500 {
		t.Errorf("Gained = %d, want >= 500", res.Gained)
	}
	if _, ok := c.board.Find("c2r2"); ok {
		t.Error("chest still on board")
	}
	if c.Moves() != 12 {
		t.Errorf("Moves() = %d, want 12", c.Moves())
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection not cleared after chest")
	}

	s := c.Snapshot()
	if s.Chests != 1 || c.Progress().Chests != 1 {
		t.Errorf("Chests = %d, want 1", s.Chests)
	}
	if s.Pops[0].Value != 500 || s.Flash[0] != "c2r2" {
		t.Errorf("first pop = %+v flash = %v, want the chest", s.Pops[0], s.Flash)
	}
	if s.ClearedByKind[engine.KindChest] != 0 {
		t.Error("chest counted as a cleared kind")
	}
	assertSettled(t, c)
}

func TestShuffle(t *testing.T) {
	c := newStarted(t, Options{Seed: 4}, 1)

	if !c.Shuffle() {
		t.Fatal("first Shuffle() = false, want true")
	}
	if c.Snapshot().ShuffleUses != 0 {
		t.Errorf("ShuffleUses = %d, want 0", c.Snapshot().ShuffleUses)
	}
	if c.Shuffle() {
		t.Error("second Shuffle() = true, want false")
	}
	assertSettled(t, c)

	none := newStarted(t, Options{Seed: 4, ShuffleUses: -1}, 1)
	if none.Shuffle() {
		t.Error("Shuffle() with no uses = true, want false")
	}
}

func TestMovesExhaustedEndsLevel(t *testing.T) {
	c := newStarted(t, Options{Seed: 7}, 1)
	c.install(runOfFive())
	c.moves = 1

	c.Tap(engine.At(2, 0))
	c.Tap(engine.At(2, 1))

	if c.State() != StateGameOver {
		t.Fatalf("State() = %v, want %v", c.State(), StateGameOver)
	}
	if res := c.Tap(engine.At(0, 0)); res.Action != ActionNone {
		t.Errorf("Tap after game over = %v, want %v", res.Action, ActionNone)
	}
	if c.Shuffle() {
		t.Error("Shuffle() after game over = true, want false")
	}
	if c.WatchdogCheck(time.Now()) {
		t.Error("WatchdogCheck() after game over = true, want false")
	}
}

func TestTimedLevel(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 10)
	s := c.Snapshot()
	if !s.Timed || s.TimeLeft != 180*time.Second {
		t.Fatalf("Timed = %v TimeLeft = %v, want timed 180s", s.Timed, s.TimeLeft)
	}

	c.Tick(179 * time.Second)
	if c.GameOver() {
		t.Fatal("game over with time left")
	}
	c.Tick(2 * time.Second)
	if !c.GameOver() {
		t.Fatal("GameOver() = false after time ran out")
	}
	if c.Snapshot().TimeLeft != 0 {
		t.Errorf("TimeLeft = %v, want 0", c.Snapshot().TimeLeft)
	}

	plain := newStarted(t, Options{Seed: 1}, 1)
	plain.Tick(time.Hour)
	if plain.GameOver() {
		t.Error("Tick ended a moves level")
	}
}

func TestWatchdog(t *testing.T) {
	c := newStarted(t, Options{Seed: 8}, 1)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c.install(deadBoard())
	if c.WatchdogCheck(t0) {
		t.Fatal("repaired on the first dead check")
	}
	if !c.WatchdogCheck(t0.Add(450 * time.Millisecond)) {
		t.Fatal("no repair on the second dead check")
	}
	if !engine.HasAnyMove(c.board) {
		t.Fatal("board still dead after watchdog repair")
	}

	c.install(deadBoard())
	if c.WatchdogCheck(t0.Add(900 * time.Millisecond)) {
		t.Error("repaired on a fresh streak")
	}
	if c.WatchdogCheck(t0.Add(1350 * time.Millisecond)) {
		t.Error("repaired inside the cooldown")
	}
	if !c.WatchdogCheck(t0.Add(1800 * time.Millisecond)) {
		t.Error("no repair after the cooldown")
	}
}

func TestWatchdogSkipsWhileSelected(t *testing.T) {
	c := newStarted(t, Options{Seed: 8}, 1)
	c.install(deadBoard())
	c.Tap(engine.At(0, 0))

	t0 := time.Now()
	for i := 0; i < 4; i++ {
		if c.WatchdogCheck(t0.Add(time.Duration(i) * 2 * time.Second)) {
			t.Fatal("watchdog repaired while a tile was selected")
		}
	}
}

func TestWatchdogHealthyBoardResetsStreak(t *testing.T) {
	c := newStarted(t, Options{Seed: 8}, 1)
	t0 := time.Now()

	c.install(deadBoard())
	c.WatchdogCheck(t0)
	c.install(runOfFive())
	c.WatchdogCheck(t0.Add(time.Second))
	c.install(deadBoard())
	if c.WatchdogCheck(t0.Add(2 * time.Second)) {
		t.Error("streak survived a healthy check")
	}
}

func TestReentrantInputRejected(t *testing.T) {
	var c *Controller
	var nested []Action
	var nestedShuffle []bool
	opts := Options{
		Seed: 7,
		Pacer: func(StepRecord) {
			nested = append(nested, c.Tap(engine.At(0, 0)).Action)
			nestedShuffle = append(nestedShuffle, c.Shuffle())
		},
	}
	c = newStarted(t, opts, 1)
	c.install(runOfFive())
	nested, nestedShuffle = nil, nil

	c.Tap(engine.At(2, 0))
	c.Tap(engine.At(2, 1))

	if len(nested) == 0 {
		t.Fatal("pacer never called")
	}
	for i, a := range nested {
		if a != ActionNone {
			t.Errorf("nested Tap #%d = %v, want %v", i, a, ActionNone)
		}
		if nestedShuffle[i] {
			t.Errorf("nested Shuffle #%d = true, want false", i)
		}
	}
	if c.Snapshot().ShuffleUses != 1 {
		t.Error("nested shuffle spent a use")
	}
}

// runawaySource makes every refill the same kind so cascades never end.
type runawaySource struct {
	ids *rand.Rand
}

func (s runawaySource) Float64() float64 { return 0.99 }

func (s runawaySource) Intn(n int) int {
	if n == 36 {
		return s.ids.Intn(n)
	}
	return 0
}

func TestCascadeCap(t *testing.T) {
	c := newStarted(t, Options{Source: runawaySource{ids: rand.New(rand.NewSource(1))}}, 1)

	if got := len(c.Snapshot().Steps); got != 30 {
		t.Errorf("cascade steps = %d, want 30", got)
	}
	if c.Busy() {
		t.Error("in-flight guard still set")
	}
	if !c.board.Consistent() {
		t.Error("board not consistent after cap")
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, want %v", c.State(), StateIdle)
	}
}

func TestDeterministicReplay(t *testing.T) {
	play := func() []Snapshot {
		c := newStarted(t, Options{Seed: 99}, 3)
		var out []Snapshot
		for i := 0; i < 8 && !c.GameOver(); i++ {
			m, ok := c.Hint()
			if !ok {
				c.Shuffle()
				continue
			}
			c.Tap(m.From)
			c.Tap(m.To)
			assertSettled(t, c)
			out = append(out, c.Snapshot())
		}
		return out
	}

	a, b := play(), play()
	if len(a) == 0 {
		t.Fatal("no moves played")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different snapshots")
	}
}

func TestSummary(t *testing.T) {
	c := newStarted(t, Options{Seed: 7}, 1)
	c.install(runOfFive())
	c.Tap(engine.At(2, 0))
	c.Tap(engine.At(2, 1))

	s := c.Summary()
	if s.Level != 1 || s.MovesUsed != 1 {
		t.Errorf("Summary = %+v, want level 1 with 1 move used", s)
	}
	if s.Cascades < 1 || s.MaxCombo < 1 {
		t.Errorf("Summary cascades = %d combo = %d, want >= 1", s.Cascades, s.MaxCombo)
	}
	if s.Score != c.Score() {
		t.Errorf("Summary.Score = %d, want %d", s.Score, c.Score())
	}
}

func TestSnapshotJSONNames(t *testing.T) {
	c := newStarted(t, Options{Seed: 1}, 3)
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"state":"idle"`) {
		t.Errorf("snapshot JSON = %s, want state by name", data)
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.State != StateIdle || back.Level != 3 {
		t.Errorf("decoded state %v level %d, want idle level 3", back.State, back.Level)
	}

	var a Action
	if err := a.UnmarshalText([]byte("teleport")); err == nil {
		t.Error("UnmarshalText(teleport) error = nil")
	}
}
