package registry

import (
	"testing"

	"github.com/vovakirdan/gemfall/internal/core"
)

type stubGame struct{ id, title string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return g.title }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func register(id, title string) {
	Register(id, func() Game { return stubGame{id: id, title: title} })
}

func TestRegisterAndCreate(t *testing.T) {
	register("test_b", "B")
	register("test_a", "A")

	if !Exists("test_a") {
		t.Error("Exists(test_a) = false, want true")
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "B" {
		t.Errorf("Title() = %q, want %q", g.Title(), "B")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "test_a":
			ia = i
		case "test_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() ids = %v, want test_a before test_b", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create(no_such_game) error = nil, want error")
	}
	if Exists("no_such_game") {
		t.Error("Exists(no_such_game) = true, want false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register("test_dup", "Dup")
	defer func() {
		if recover() == nil {
			t.Error("second Register did not panic")
		}
	}()
	register("test_dup", "Dup")
}
