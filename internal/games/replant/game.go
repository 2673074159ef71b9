// Package replant provides the isometric replant puzzle for the platform.
// Each level pack is registered as its own game.
package replant

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/replant/internal/config"
	platformcore "github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/games/replant/core"
	"github.com/vovakirdan/replant/internal/games/replant/levels"
	"github.com/vovakirdan/replant/internal/registry"
)

// splashTTL is how long a replant splash stays on screen.
const splashTTL = 300 * time.Millisecond

// Package-level settings shared by every game instance.
var (
	settingsMu  sync.RWMutex
	settings    = config.DefaultReplantConfig()
	startLevels = make(map[string]int)
	tileTable   = core.StandardTable()
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.ReplantConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// Config returns the active configuration.
func Config() config.ReplantConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SetStartLevel sets the starting level (1-indexed) of a pack for the next
// Reset. 0 means start from the beginning.
func SetStartLevel(packID string, level int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	startLevels[packID] = level
}

// takeStartLevel returns and forgets the pending start level of a pack.
func takeStartLevel(packID string) int {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	n := startLevels[packID]
	delete(startLevels, packID)
	return n
}

// Table returns the tile table shared by all packs.
func Table() *core.TileTable {
	return tileTable
}

func init() {
	packs, err := levels.Builtin(tileTable)
	if err != nil {
		panic(err)
	}
	for _, p := range packs {
		if err := RegisterPack(p); err != nil {
			panic(err)
		}
	}
}

// RegisterPack makes a pack playable through the registry.
func RegisterPack(p levels.Pack) error {
	if p.Len() == 0 {
		return fmt.Errorf("replant: pack %q has no levels", p.ID)
	}
	if registry.Exists(p.ID) {
		return fmt.Errorf("replant: pack %q already registered", p.ID)
	}
	registry.Register(p.ID, func() registry.Game {
		return New(p)
	})
	return nil
}

// splash is a short-lived replant marker.
type splash struct {
	pos core.TilePos
	ttl time.Duration
}

// Game plays the levels of one pack in order.
type Game struct {
	pack levels.Pack
	cfg  config.ReplantConfig
	rng  *rand.Rand

	level      *core.Level
	levelIndex int
	ocean      *Ocean
	splashes   []splash

	// Screen dimensions
	screenW int
	screenH int
	tick    time.Duration

	// Status
	cleared  int
	gameOver bool
	paused   bool
}

// New creates a game for a pack using the active configuration.
func New(pack levels.Pack) *Game {
	return &Game{
		pack: pack,
		cfg:  Config(),
		rng:  rand.New(rand.NewSource(1)),
	}
}

// ID returns the pack id.
func (g *Game) ID() string {
	return g.pack.ID
}

// Title returns the pack's display name.
func (g *Game) Title() string {
	return g.pack.Name
}

// Pack returns the pack being played.
func (g *Game) Pack() levels.Pack {
	return g.pack
}

// Reset starts the pack again from the selected start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = Config()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = cfg.TickDuration()
	g.cleared = 0
	g.gameOver = false
	g.paused = false
	g.ocean = NewOcean(g.cfg.Ocean)

	start := 0
	if n := takeStartLevel(g.pack.ID); n > 0 && n <= g.pack.Len() {
		start = n - 1
	}
	g.loadLevel(start)
}

// loadLevel builds a fresh level instance for the pack level at index.
// It reports false and keeps the running level when index is out of range.
func (g *Game) loadLevel(index int) bool {
	lvl, err := g.pack.Level(index)
	if err != nil {
		return false
	}
	g.levelIndex = index
	g.splashes = nil
	g.level = core.NewLevel(lvl.Layout, g.levelOptions())
	return true
}

// levelOptions maps the configuration onto level options.
func (g *Game) levelOptions() core.Options {
	timing := g.cfg.Timings()
	opts := core.DefaultOptions(tileTable)
	opts.StepLength = timing.StepLength
	opts.JumpTime = timing.JumpTime
	opts.ReplantDuration = timing.ReplantDuration
	opts.ClearDelay = timing.ClearDelay
	opts.Rand = rand.New(rand.NewSource(g.rng.Int63()))

	var healthy []*core.TileType
	for _, code := range g.cfg.Replant.Healthy {
		if tt, err := tileTable.Lookup(code); err == nil {
			healthy = append(healthy, tt)
		}
	}
	if len(healthy) > 0 {
		opts.Healthy = healthy
	}
	return opts
}

// LevelCount returns the number of levels in the pack.
func (g *Game) LevelCount() int {
	return g.pack.Len()
}

// LevelNames returns the level names in play order.
func (g *Game) LevelNames() []string {
	names := make([]string, len(g.pack.Levels))
	for i, l := range g.pack.Levels {
		names[i] = l.Name
	}
	return names
}

// SelectLevel jumps to a level of the pack.
func (g *Game) SelectLevel(index int) bool {
	if !g.loadLevel(index) {
		return false
	}
	g.gameOver = false
	return true
}

// Level returns the running level instance.
func (g *Game) Level() *core.Level {
	return g.level
}

// LevelIndex returns the zero-based index of the running level.
func (g *Game) LevelIndex() int {
	return g.levelIndex
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	// Handle restart
	if input.Has(platformcore.ActionRestart) {
		if g.gameOver {
			g.gameOver = false
			g.cleared = 0
			g.loadLevel(0)
		} else {
			g.level.Restart()
			g.splashes = nil
		}
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if input.Has(platformcore.ActionNext) {
		g.SelectLevel(g.levelIndex + 1)
	}
	if input.Has(platformcore.ActionPrev) {
		g.SelectLevel(g.levelIndex - 1)
	}

	if g.ocean != nil {
		g.ocean.Advance(g.tick)
	}
	if g.gameOver || g.paused || g.level == nil {
		return platformcore.StepResult{State: g.State()}
	}

	g.level.HandleInput(core.KeyState(input.Move), core.KeyState(input.Push))
	g.level.Advance(g.tick)
	g.ageSplashes(g.tick)

	var result platformcore.StepResult
	for _, ev := range g.level.Events() {
		switch ev.Kind {
		case core.EventSplash:
			g.splashes = append(g.splashes, splash{pos: ev.Pos, ttl: splashTTL})
		case core.EventLevelWon:
			g.cleared++
			result.Cleared = g.clearedLevel()
		}
	}

	if g.level.Cleared() {
		if g.levelIndex+1 < g.pack.Len() {
			g.loadLevel(g.levelIndex + 1)
		} else {
			g.gameOver = true
		}
	}

	result.State = g.State()
	return result
}

// clearedLevel describes the running level for run history.
func (g *Game) clearedLevel() *platformcore.ClearedLevel {
	stats := g.level.Stats()
	lvl, err := g.pack.Level(g.levelIndex)
	if err != nil {
		return nil
	}
	return &platformcore.ClearedLevel{
		PackID:     g.pack.ID,
		LevelID:    lvl.ID,
		LevelIndex: g.levelIndex,
		Moves:      stats.Moves,
		Pushes:     stats.Pushes,
		Duration:   stats.Elapsed,
	}
}

func (g *Game) ageSplashes(dt time.Duration) {
	kept := g.splashes[:0]
	for _, s := range g.splashes {
		s.ttl -= dt
		if s.ttl > 0 {
			kept = append(kept, s)
		}
	}
	g.splashes = kept
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:      g.cleared,
		GameOver:   g.gameOver,
		Paused:     g.paused,
		LevelIndex: g.levelIndex,
		LevelCount: g.pack.Len(),
	}
	if g.level != nil {
		stats := g.level.Stats()
		if lvl, err := g.pack.Level(g.levelIndex); err == nil {
			st.Level = lvl.Name
		}
		st.Moves = stats.Moves
		st.Pushes = stats.Pushes
		st.Phase = g.level.Phase().String()
	}
	return st
}
