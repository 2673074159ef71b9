package replant_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/config"
	platformcore "github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/games/replant"
	"github.com/vovakirdan/replant/internal/games/replant/core"
	"github.com/vovakirdan/replant/internal/games/replant/levels"
	"github.com/vovakirdan/replant/internal/registry"
)

var runtimeCfg = platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100, Seed: 3}

// fastConfig installs short timings for the duration of a test.
func fastConfig(t *testing.T) {
	t.Helper()
	prev := replant.Config()
	cfg := config.DefaultReplantConfig()
	cfg.Timing = config.TimingConfig{
		StepLength:      10 * time.Millisecond,
		JumpTime:        10 * time.Millisecond,
		ReplantDuration: 200 * time.Millisecond,
	}
	cfg.Ocean.Enabled = false
	replant.SetConfig(cfg)
	t.Cleanup(func() { replant.SetConfig(prev) })
}

func testPack(t *testing.T, id string, maps ...string) levels.Pack {
	t.Helper()
	p := levels.Pack{ID: id, Name: "Test Pack"}
	for i, m := range maps {
		layout, err := core.ParseLevel(m, replant.Table())
		require.NoError(t, err)
		p.Levels = append(p.Levels, levels.Level{
			ID:     string(rune('a' + i)),
			Name:   "Level " + string(rune('A'+i)),
			Index:  i,
			Text:   m,
			Layout: layout,
		})
	}
	return p
}

func keys(slots ...int) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, s := range slots {
		in.Move[s] = true
	}
	return in
}

func action(a platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	in.Set(a)
	return in
}

// runUntil steps with no input until cond holds.
func runUntil(t *testing.T, g *replant.Game, cond func() bool) {
	t.Helper()
	for range 500 {
		if cond() {
			return
		}
		g.Step(platformcore.NewInputFrame())
	}
	t.Fatal("condition not reached")
}

func TestBuiltinPackRegistered(t *testing.T) {
	require.True(t, registry.Exists("classic"))

	g, err := registry.Create("classic")
	require.NoError(t, err)
	assert.Equal(t, "Classic", g.Title())

	sel, ok := g.(registry.LevelSelector)
	require.True(t, ok, "packs support level selection")
	assert.Equal(t, 14, sel.LevelCount())
	assert.Len(t, sel.LevelNames(), 14)
}

func TestRegisterPack(t *testing.T) {
	p := testPack(t, "register-test", "AF")
	require.NoError(t, replant.RegisterPack(p))
	t.Cleanup(func() { registry.Unregister(p.ID) })

	assert.True(t, registry.Exists(p.ID))
	assert.Error(t, replant.RegisterPack(p), "duplicate ids are rejected")
	assert.Error(t, replant.RegisterPack(levels.Pack{ID: "empty"}), "packs need levels")
}

func TestWinAdvancesToNextLevel(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "win", "AF", "FA"))
	g.Reset(runtimeCfg)

	res := g.Step(keys(platformcore.KeyRight))
	require.NotNil(t, res.Cleared, "landing on the flag wins in the same tick")
	assert.Equal(t, "win", res.Cleared.PackID)
	assert.Equal(t, "a", res.Cleared.LevelID)
	assert.Equal(t, 1, res.Cleared.Moves)
	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, "replanting", res.State.Phase)

	runUntil(t, g, func() bool { return g.LevelIndex() == 1 })
	assert.Equal(t, "Level B", g.State().Level)
	assert.Equal(t, 0, g.State().Moves, "new level starts with fresh counters")

	res = g.Step(keys(platformcore.KeyLeft))
	require.NotNil(t, res.Cleared)
	runUntil(t, g, func() bool { return g.State().GameOver })

	g.Step(action(platformcore.ActionRestart))
	assert.False(t, g.State().GameOver)
	assert.Equal(t, 0, g.LevelIndex())
	assert.Equal(t, 0, g.State().Score)
}

func TestMoveBlockedByRock(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "rock", "AXF"))
	g.Reset(runtimeCfg)

	res := g.Step(keys(platformcore.KeyRight))
	assert.Nil(t, res.Cleared)
	assert.Equal(t, 0, res.State.Moves)
}

func TestPushThroughGame(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "push", "Ao\n F"))
	g.Reset(runtimeCfg)

	in := platformcore.NewInputFrame()
	in.Push[platformcore.KeyRight] = true
	res := g.Step(in)
	assert.Equal(t, 1, res.State.Pushes)

	tile := g.Level().Grid().Get(core.P(2, 0))
	require.NotNil(t, tile, "grass moved one cell")
	assert.Equal(t, core.CodeGrass4, tile.Type.Code, "and decayed one stage")
}

func TestRestartRebuildsLevel(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "restart", "Ax F"))
	g.Reset(runtimeCfg)

	g.Step(keys(platformcore.KeyRight))
	require.Equal(t, 1, g.State().Moves)

	g.Step(action(platformcore.ActionRestart))
	assert.Equal(t, 0, g.State().Moves)
	assert.Equal(t, core.P(0, 0), g.Level().Player().Pos)
}

func TestPauseFreezesInput(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "pause", "AxF"))
	g.Reset(runtimeCfg)

	g.Step(action(platformcore.ActionPause))
	require.True(t, g.State().Paused)

	g.Step(keys(platformcore.KeyRight))
	assert.Equal(t, 0, g.State().Moves)

	g.Step(action(platformcore.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestLevelSkipAndStartLevel(t *testing.T) {
	fastConfig(t)
	p := testPack(t, "skip", "AF", "FA", "A F")

	replant.SetStartLevel(p.ID, 2)
	g := replant.New(p)
	g.Reset(runtimeCfg)
	assert.Equal(t, 1, g.LevelIndex())

	g.Step(action(platformcore.ActionNext))
	assert.Equal(t, 2, g.LevelIndex())
	g.Step(action(platformcore.ActionNext))
	assert.Equal(t, 2, g.LevelIndex(), "no level past the last")

	g.Step(action(platformcore.ActionPrev))
	assert.Equal(t, 1, g.LevelIndex())

	assert.False(t, g.SelectLevel(7))
	assert.True(t, g.SelectLevel(0))

	g.Reset(runtimeCfg)
	assert.Equal(t, 0, g.LevelIndex(), "start level is used once")
}

func TestRenderDrawsBoard(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "render", "AoF"))
	g.Reset(runtimeCfg)

	dst := platformcore.NewScreen(runtimeCfg.ScreenW, runtimeCfg.ScreenH)
	g.Render(dst)

	out := dst.String()
	assert.Contains(t, out, "Replant")
	assert.Contains(t, out, "Level 1/1")
	assert.Contains(t, out, "☻")
	assert.Contains(t, out, "⚑")
	assert.Contains(t, out, "█")
}

func TestRenderGameOverOverlay(t *testing.T) {
	fastConfig(t)
	g := replant.New(testPack(t, "overlay", "AF"))
	g.Reset(runtimeCfg)

	g.Step(keys(platformcore.KeyRight))
	runUntil(t, g, func() bool { return g.State().GameOver })

	dst := platformcore.NewScreen(runtimeCfg.ScreenW, runtimeCfg.ScreenH)
	g.Render(dst)
	assert.True(t, strings.Contains(dst.String(), "All levels replanted!"))
}
