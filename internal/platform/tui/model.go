package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/replant/internal/config"
	"github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/metrics"
	"github.com/vovakirdan/replant/internal/registry"
	"github.com/vovakirdan/replant/internal/storage"
)

// Options carries the optional collaborators of a play session.
type Options struct {
	Store   *storage.Store
	Metrics *metrics.Metrics
	Logger  *log.Logger
	Latch   time.Duration // key hold window, see KeyLatch
	Session string        // recorded with each run, empty for local play
}

// Model is the Bubble Tea model for playing a pack.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	moveKeys   *KeyLatch
	pushKeys   *KeyLatch
	gameState  core.GameState
	lastTick   time.Time
	now        func() time.Time
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Latch <= 0 {
		opts.Latch = config.DefaultReplantConfig().Input.Latch()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		moveKeys:   NewKeyLatch(opts.Latch),
		pushKeys:   NewKeyLatch(opts.Latch),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.staleTick(time.Time(msg)) {
			return m, nil
		}
		m.lastTick = time.Time(msg)
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch set, slots := m.keyMapper.MapDirKey(msg); set {
	case KeySetMove:
		m.moveKeys.Press(m.now(), slots...)
		return m, nil
	case KeySetPush:
		m.pushKeys.Press(m.now(), slots...)
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The level keeps running;
// the renderer recenters on the next frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// staleTick reports whether t belongs to a second tick chain, such as one
// left over from a previous model in the same program. Dropping it without
// rescheduling ends that chain.
func (m Model) staleTick(t time.Time) bool {
	if m.lastTick.IsZero() {
		return false
	}
	interval := time.Second / time.Duration(max(m.config.TickRate, 1))
	return t.Sub(m.lastTick) < interval/2
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.now()
	m.inputFrame.Move = m.moveKeys.Held(now)
	m.inputFrame.Push = m.pushKeys.Held(now)

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A tap is consumed by the action it caused.
	levelChanged := result.State.LevelIndex != prev.LevelIndex
	if result.State.Moves != prev.Moves || levelChanged {
		m.moveKeys.Release()
	}
	if result.State.Pushes != prev.Pushes || levelChanged {
		m.pushKeys.Release()
	}

	if result.Cleared != nil {
		m.recordRun(*result.Cleared)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a cleared level and updates metrics.
func (m Model) recordRun(c core.ClearedLevel) {
	m.opts.Metrics.LevelCleared(c)
	if m.opts.Store == nil {
		return
	}
	run, err := m.opts.Store.SaveRun(storage.Run{
		PackID:     c.PackID,
		LevelID:    c.LevelID,
		LevelIndex: c.LevelIndex,
		Moves:      c.Moves,
		Pushes:     c.Pushes,
		Duration:   c.Duration,
		Session:    m.opts.Session,
	})
	if err != nil {
		m.opts.Logger.Error("Could not save run", "pack", c.PackID, "level", c.LevelID, "error", err)
		return
	}
	m.opts.Logger.Info("Level cleared", "pack", c.PackID, "level", c.LevelID,
		"moves", c.Moves, "pushes", c.Pushes, "run", run.RunID)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(config.UserDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("Could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// State returns the last game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// WantsBack returns true if the player left for the menu.
func (m Model) WantsBack() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given game.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (back bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.WantsBack(), nil
	}
	return false, nil
}
