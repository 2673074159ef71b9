package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/storage"
)

// fakeGame counts held keys and wins on demand.
type fakeGame struct {
	frames  []core.InputFrame
	state   core.GameState
	winNext bool
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {}
func (g *fakeGame) Render(*core.Screen)      {}
func (g *fakeGame) State() core.GameState    { return g.state }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Move.Any() {
		g.state.Moves++
	}
	if in.Push.Any() {
		g.state.Pushes++
	}
	res := core.StepResult{State: g.state}
	if g.winNext {
		g.winNext = false
		res.Cleared = &core.ClearedLevel{PackID: "fake", LevelID: "01", Moves: g.state.Moves}
	}
	return res
}

func newTestModel(t *testing.T, g *fakeGame, opts Options) (Model, *time.Time) {
	t.Helper()
	clock := time.Unix(5000, 0)
	opts.Latch = 100 * time.Millisecond
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, opts)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTapMovesOnce(t *testing.T) {
	g := &fakeGame{}
	m, clock := newTestModel(t, g, Options{})

	m = step(t, m, runeKey('d'))
	m = step(t, m, TickMsg{})
	*clock = clock.Add(16 * time.Millisecond)
	m = step(t, m, TickMsg{})

	if g.state.Moves != 1 {
		t.Errorf("one tap should move once, got %d moves", g.state.Moves)
	}
	if !g.frames[0].Move[core.KeyRight] {
		t.Error("first frame should hold the right walking key")
	}
	if g.frames[1].Move.Any() {
		t.Error("keys should be released after the move")
	}
}

func TestModelPushKeysSeparateFromMoves(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, Options{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	step(t, m, TickMsg{})

	if g.state.Pushes != 1 || g.state.Moves != 0 {
		t.Errorf("arrow keys push: moves=%d pushes=%d", g.state.Moves, g.state.Pushes)
	}
}

func TestModelLatchExpires(t *testing.T) {
	g := &fakeGame{state: core.GameState{Paused: true}}
	m, clock := newTestModel(t, g, Options{})

	m = step(t, m, runeKey('w'))
	*clock = clock.Add(150 * time.Millisecond)
	step(t, m, TickMsg{})

	if g.frames[0].Move.Any() {
		t.Error("keys older than the latch window are not held")
	}
}

func TestModelActionsReachGame(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, Options{})

	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg{})
	step(t, m, TickMsg{})

	if !g.frames[0].Has(core.ActionRestart) {
		t.Error("restart should reach the game")
	}
	if g.frames[1].Has(core.ActionRestart) {
		t.Error("actions last one frame")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m, _ := newTestModel(t, &fakeGame{}, Options{})
	back := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.WantsBack() {
		t.Error("esc should return to the menu")
	}

	m, _ = newTestModel(t, &fakeGame{}, Options{})
	quit := step(t, m, runeKey('q'))
	if quit.WantsBack() || !quit.quitting {
		t.Error("q should quit")
	}
}

func TestModelSavesClearedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{winNext: true}
	m, _ := newTestModel(t, g, Options{Store: store, Session: "sess"})
	step(t, m, TickMsg{})

	runs, err := store.SessionRuns("sess", 10)
	if err != nil {
		t.Fatalf("SessionRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].PackID != "fake" {
		t.Fatalf("expected one saved run, got %+v", runs)
	}
	if p, _ := store.Progress("fake"); p != 0 {
		t.Errorf("Progress = %d, expected 0", p)
	}
}

func TestModelDropsSecondTickChain(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g, Options{})

	t0 := time.Unix(6000, 0)
	m = step(t, m, TickMsg(t0))
	m = step(t, m, TickMsg(t0.Add(3*time.Millisecond)))
	step(t, m, TickMsg(t0.Add(17*time.Millisecond)))

	if len(g.frames) != 2 {
		t.Errorf("expected 2 stepped frames, got %d", len(g.frames))
	}
}
