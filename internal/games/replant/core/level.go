package core

import (
	"math"
	"math/rand"
	"time"
)

// Phase is the lifecycle stage of a level instance.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseReplanting
	PhaseCleared
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseReplanting:
		return "replanting"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Options configures level timing and the replant celebration.
type Options struct {
	StepLength      time.Duration
	JumpTime        time.Duration
	ReplantDuration time.Duration
	ClearDelay      time.Duration
	// Healthy lists the types the replant may pick from.
	Healthy []*TileType
	// Rand drives replant choices. A nil source is seeded with 1.
	Rand *rand.Rand
}

// DefaultOptions returns the timing used when nothing is configured.
func DefaultOptions(table *TileTable) Options {
	var healthy []*TileType
	for _, c := range []rune{CodeGrassFull, CodeGrass4} {
		if tt, err := table.Lookup(c); err == nil {
			healthy = append(healthy, tt)
		}
	}
	return Options{
		StepLength:      250 * time.Millisecond,
		JumpTime:        150 * time.Millisecond,
		ReplantDuration: 2 * time.Second,
		ClearDelay:      time.Second,
		Healthy:         healthy,
	}
}

// PlayerView is the player's presentation state.
type PlayerView struct {
	Pos     TilePos
	View    Vec3    // projected, blended across the jump
	Hop     float64 // jump height in [0, 1]
	Jumping bool
}

// Stats counts player actions since the last restart.
type Stats struct {
	Moves   int
	Pushes  int
	Elapsed time.Duration
}

// Level owns one playable instance of a layout: its grid, the player, the
// step clock and at most one replant propagation.
type Level struct {
	layout *Layout
	opts   Options

	grid   *Grid
	tiles  map[TileID]*Tile
	step   *StepAnimator
	push   *PushEngine
	events *EventQueue

	player     TilePos
	playerFrom TilePos
	jump       time.Duration // remaining jump time, 0 when idle

	phase      Phase
	replant    *Replant
	clearTimer time.Duration
	generation int
	stats      Stats

	lastPush    Dir
	pushLatched bool
}

// NewLevel builds a level instance from a parsed layout.
func NewLevel(layout *Layout, opts Options) *Level {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	l := &Level{
		layout: layout,
		opts:   opts,
		events: &EventQueue{},
	}
	l.build()
	return l
}

// build creates fresh game state from the layout.
func (l *Level) build() {
	l.grid = NewGrid()
	l.tiles = make(map[TileID]*Tile, len(l.layout.Cells))
	for p, c := range l.layout.Cells {
		l.grid.Set(p, &Tile{
			Type:    c.Type,
			HasFlag: c.HasFlag,
			HasRock: c.HasRock,
			Pos:     p,
			PrevPos: p,
		})
	}
	// IDs follow row-major order so they are stable across restarts.
	id := TileID(0)
	l.grid.Each(func(_ TilePos, t *Tile) {
		id++
		t.ID = id
		l.tiles[id] = t
	})

	l.step = NewStepAnimator(l.grid, l.opts.StepLength, l.events)
	l.push = NewPushEngine(l.grid, l.step, l.events)
	l.player = TilePos{}
	l.playerFrom = TilePos{}
	l.jump = 0
	l.phase = PhasePlaying
	l.replant = nil
	l.clearTimer = 0
	l.stats = Stats{}
	l.pushLatched = false
}

// Restart rebuilds the level from its layout. Any running step or replant
// is dropped and can no longer touch the new grid.
func (l *Level) Restart() {
	l.step.cancel()
	if l.replant != nil {
		l.replant.Cancel()
	}
	l.events.Reset()
	l.generation++
	l.build()
}

// Generation counts restarts of this instance.
func (l *Level) Generation() int {
	return l.generation
}

// Grid exposes the live grid. Callers must treat it as read-only.
func (l *Level) Grid() *Grid {
	return l.grid
}

// Layout returns the definition this level was built from.
func (l *Level) Layout() *Layout {
	return l.layout
}

// Step returns the level's step animator.
func (l *Level) Step() *StepAnimator {
	return l.step
}

// Phase returns the current lifecycle phase.
func (l *Level) Phase() Phase {
	return l.phase
}

// Won reports whether the goal has been reached.
func (l *Level) Won() bool {
	return l.phase != PhasePlaying
}

// Cleared reports whether the celebration has finished.
func (l *Level) Cleared() bool {
	return l.phase == PhaseCleared
}

// Stats returns counters since the last restart.
func (l *Level) Stats() Stats {
	return l.stats
}

// Replant returns the running or finished propagation, if any.
func (l *Level) Replant() *Replant {
	return l.replant
}

// Events drains queued events.
func (l *Level) Events() []Event {
	return l.events.Drain()
}

// TryMove starts a jump to the neighbouring tile in d. The target must
// exist and carry no rock, and the player must not be mid-jump.
func (l *Level) TryMove(d Dir) bool {
	if l.phase != PhasePlaying || l.jump > 0 {
		return false
	}
	target := l.player.Step(d)
	if !l.grid.Get(target).Walkable() {
		return false
	}
	l.playerFrom = l.player
	l.player = target
	l.jump = l.opts.JumpTime
	l.stats.Moves++
	l.events.Push(Event{Kind: EventPlayerMoved, From: l.playerFrom, To: target})
	if l.jump <= 0 {
		l.land()
	}
	return true
}

// TryPush shifts the chain in front of the player if it can move.
func (l *Level) TryPush(d Dir) bool {
	if l.phase != PhasePlaying || !l.push.CanShift(l.player, d) {
		return false
	}
	l.push.ShiftChain(l.player, d)
	l.stats.Pushes++
	l.prune()
	return true
}

// HandleInput resolves both key sets for the current frame. Pushes fire
// once per press; moves repeat while held and the player is idle.
func (l *Level) HandleInput(move, push KeyState) {
	if l.phase != PhasePlaying {
		l.pushLatched = false
		return
	}

	d, ok := Resolve(push, l.player, l.grid)
	if ok && (!l.pushLatched || d != l.lastPush) {
		l.TryPush(d)
	}
	l.pushLatched = ok
	l.lastPush = d

	if d, ok := Resolve(move, l.player, l.grid); ok && l.jump <= 0 {
		l.TryMove(d)
	}
}

// Advance moves every clock of the level forward by dt.
func (l *Level) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if l.phase == PhasePlaying {
		l.stats.Elapsed += dt
	}

	if l.step.Advance(dt) {
		l.prune()
	}

	if l.jump > 0 {
		l.jump -= dt
		if l.jump <= 0 {
			l.jump = 0
			l.land()
		}
	}

	if l.phase == PhaseReplanting {
		if !l.replant.Done() {
			l.replant.Advance(dt)
		} else {
			l.clearTimer -= dt
		}
		if l.replant.Done() && l.clearTimer <= 0 {
			l.clear()
		}
	}
}

func (l *Level) land() {
	t := l.grid.Get(l.player)
	if t == nil || !t.HasFlag || l.phase != PhasePlaying {
		return
	}
	l.win()
}

// win starts the replant from the goal. The step is committed first so
// the propagator and the push engine never overlap.
func (l *Level) win() {
	l.step.Commit()
	l.prune()
	l.phase = PhaseReplanting
	l.events.Push(Event{Kind: EventLevelWon, Pos: l.player})
	l.clearTimer = l.opts.ClearDelay
	delay := PerTileDelay(l.opts.ReplantDuration, l.grid)
	l.replant = NewReplant(l.grid, l.player, l.opts.Healthy, l.opts.Rand, delay, l.events)
}

func (l *Level) clear() {
	l.phase = PhaseCleared
	l.events.Push(Event{Kind: EventLevelCleared})
}

// prune forgets tiles that left the grid and are no longer animating.
func (l *Level) prune() {
	fading := make(map[*Tile]bool, len(l.step.Pending()))
	for _, t := range l.step.Pending() {
		fading[t] = true
	}
	for id, t := range l.tiles {
		if l.grid.Get(t.Pos) != t && !fading[t] {
			delete(l.tiles, id)
		}
	}
}

// Tile returns the live tile with the given id, including tiles that are
// fading out during the current step.
func (l *Level) Tile(id TileID) (*Tile, bool) {
	t, ok := l.tiles[id]
	return t, ok
}

// TileIDs returns the ids of all tiles a renderer should draw.
func (l *Level) TileIDs() []TileID {
	out := make([]TileID, 0, len(l.tiles))
	for id := TileID(1); len(out) < len(l.tiles); id++ {
		if _, ok := l.tiles[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// TileView returns the projected position of a tile blended by step
// progress, and whether the tile is still part of the level.
func (l *Level) TileView(id TileID) (Vec3, bool) {
	t, ok := l.tiles[id]
	if !ok {
		return Vec3{}, false
	}
	return t.PrevPos.Project().Lerp(t.Pos.Project(), l.step.Progress()), true
}

// Removing reports whether a tile is animating toward removal.
func (l *Level) Removing(id TileID) bool {
	t, ok := l.tiles[id]
	return ok && l.grid.Get(t.Pos) != t
}

// Player returns the player's presentation state.
func (l *Level) Player() PlayerView {
	if l.jump <= 0 || l.opts.JumpTime <= 0 {
		return PlayerView{Pos: l.player, View: l.player.Project()}
	}
	f := 1 - float64(l.jump)/float64(l.opts.JumpTime)
	f = min(max(f, 0), 1)
	return PlayerView{
		Pos:     l.player,
		View:    l.playerFrom.Project().Lerp(l.player.Project(), f),
		Hop:     math.Sin(f * math.Pi),
		Jumping: true,
	}
}

// Bounds returns the occupied bounding box of the live grid.
func (l *Level) Bounds() (lo, hi TilePos, ok bool) {
	return l.grid.Bounds()
}

// Center returns the projected centre of the level's bounding box, used by
// collaborators to frame the camera.
func (l *Level) Center() Vec3 {
	lo, hi, ok := l.grid.Bounds()
	if !ok {
		return l.player.Project()
	}
	return lo.Project().Lerp(hi.Project(), 0.5)
}
