package registry

import (
	"testing"

	"github.com/vovakirdan/replant/internal/core"
)

type stubGame struct {
	id    string
	title string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateUnregister(t *testing.T) {
	id := "test-pack"
	Register(id, func() Game { return &stubGame{id: id, title: "Test Pack"} })
	defer Unregister(id)

	if !Exists(id) {
		t.Fatalf("Exists(%q) = false after Register", id)
	}

	g, err := Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	if g.ID() != id {
		t.Errorf("ID() = %q, expected %q", g.ID(), id)
	}

	found := false
	for _, info := range List() {
		if info.ID == id {
			found = true
			if info.Title != "Test Pack" {
				t.Errorf("Title = %q, expected %q", info.Title, "Test Pack")
			}
		}
	}
	if !found {
		t.Errorf("List() does not contain %q", id)
	}

	if !Unregister(id) {
		t.Error("Unregister should report a registered id")
	}
	if Exists(id) {
		t.Error("Exists should be false after Unregister")
	}
	if Unregister(id) {
		t.Error("second Unregister should report false")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-pack"); err == nil {
		t.Error("Create of an unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	id := "dup-pack"
	Register(id, func() Game { return &stubGame{id: id} })
	defer Unregister(id)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(id, func() Game { return &stubGame{id: id} })
}
