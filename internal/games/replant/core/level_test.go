package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

func TestTryMove(t *testing.T) {
	l := newLevel(t, "AX\no")

	assert.False(t, l.TryMove(core.DirRight), "rock blocks")
	assert.False(t, l.TryMove(core.DirDown), "no tile")
	assert.True(t, l.TryMove(core.DirUp))
	assert.Equal(t, core.P(0, 1), l.Player().Pos)
	assert.Equal(t, 1, l.Stats().Moves)
}

func TestJumpBlocksMoves(t *testing.T) {
	l := newLevel(t, "Axx", func(o *core.Options) { o.JumpTime = 100 * time.Millisecond })

	require.True(t, l.TryMove(core.DirRight))
	assert.False(t, l.TryMove(core.DirRight))

	l.Advance(50 * time.Millisecond)
	view := l.Player()
	assert.True(t, view.Jumping)
	assert.InDelta(t, 1.0, view.Hop, 1e-9)
	assert.InDelta(t, core.P(0, 0).Project().Lerp(core.P(1, 0).Project(), 0.5).X, view.View.X, 1e-9)

	l.Advance(50 * time.Millisecond)
	assert.False(t, l.Player().Jumping)
	assert.True(t, l.TryMove(core.DirRight))
	assert.Equal(t, core.P(2, 0), l.Player().Pos)
}

func TestWinReplantsThenClears(t *testing.T) {
	l := newLevel(t, "AF\n1", func(o *core.Options) { o.ClearDelay = 100 * time.Millisecond })

	require.True(t, l.TryMove(core.DirRight))
	assert.True(t, l.Won())
	assert.Equal(t, core.PhaseReplanting, l.Phase())
	require.NotNil(t, l.Replant())

	// No pushes or moves during the celebration.
	assert.False(t, l.TryPush(core.DirLeft))
	assert.False(t, l.TryMove(core.DirLeft))

	l.Advance(time.Millisecond)
	assert.True(t, l.Replant().Done())
	assert.Equal(t, core.PhaseReplanting, l.Phase())

	l.Advance(100 * time.Millisecond)
	assert.True(t, l.Cleared())

	ks := kinds(l.Events())
	assert.Contains(t, ks, core.EventLevelWon)
	assert.Contains(t, ks, core.EventReplantDone)
	assert.Equal(t, core.EventLevelCleared, ks[len(ks)-1])

	// The decayed grass was restored.
	assert.Contains(t, []rune{'o', '4'}, codeAt(l.Grid(), core.P(0, 1)))
}

func TestRestartDuringStep(t *testing.T) {
	l := newLevel(t, "A1")
	require.True(t, l.TryPush(core.DirRight))
	require.True(t, l.Step().Active())
	before := l.Generation()

	l.Restart()
	assert.Equal(t, before+1, l.Generation())
	assert.False(t, l.Step().Active())
	assert.Empty(t, l.Events())

	l.Advance(time.Second)
	assert.Equal(t, '1', codeAt(l.Grid(), core.P(1, 0)))
	assert.Empty(t, l.Events())
	assert.Equal(t, 0, l.Stats().Pushes)
}

func TestRestartDuringReplant(t *testing.T) {
	l := newLevel(t, "AF1", func(o *core.Options) { o.ReplantDuration = time.Second })
	oldGrid := l.Grid()

	require.True(t, l.TryMove(core.DirRight))
	replant := l.Replant()
	require.NotNil(t, replant)
	require.False(t, replant.Done())

	l.Restart()
	assert.True(t, replant.Cancelled())
	assert.NotSame(t, oldGrid, l.Grid())
	assert.Equal(t, core.PhasePlaying, l.Phase())
	assert.Nil(t, l.Replant())

	l.Advance(5 * time.Second)
	assert.Equal(t, '1', codeAt(l.Grid(), core.P(2, 0)))
	assert.Equal(t, core.P(0, 0), l.Player().Pos)
	assert.Empty(t, l.Events())
}

func TestHandleInputPushesOnPress(t *testing.T) {
	l := newLevel(t, "4A4")
	right := keys(core.DirRight)
	left := keys(core.DirLeft)

	l.HandleInput(core.KeyState{}, right)
	assert.Equal(t, 1, l.Stats().Pushes)
	l.HandleInput(core.KeyState{}, right)
	assert.Equal(t, 1, l.Stats().Pushes)

	l.HandleInput(core.KeyState{}, core.KeyState{})
	l.HandleInput(core.KeyState{}, left)
	assert.Equal(t, 2, l.Stats().Pushes)
	assert.Equal(t, '3', codeAt(l.Grid(), core.P(-2, 0)))
	assert.Equal(t, '3', codeAt(l.Grid(), core.P(2, 0)))
}

func TestHandleInputMovesRepeatWhileHeld(t *testing.T) {
	l := newLevel(t, "Axxx")
	right := keys(core.DirRight)

	for range 3 {
		l.HandleInput(right, core.KeyState{})
	}
	assert.Equal(t, core.P(3, 0), l.Player().Pos)

	// At the end of the row the key snaps to a missing axis and stops.
	l.HandleInput(right, core.KeyState{})
	assert.Equal(t, core.P(3, 0), l.Player().Pos)
	assert.Equal(t, 3, l.Stats().Moves)
}

func TestTileViewBlendsByStep(t *testing.T) {
	l := newLevel(t, "A4")
	tile := l.Grid().Get(core.P(1, 0))
	require.True(t, l.TryPush(core.DirRight))

	l.Advance(50 * time.Millisecond)
	v, ok := l.TileView(tile.ID)
	require.True(t, ok)
	want := core.P(1, 0).Project().Lerp(core.P(2, 0).Project(), 0.5)
	assert.InDelta(t, want.X, v.X, 1e-9)
	assert.InDelta(t, want.Y, v.Y, 1e-9)

	l.Advance(100 * time.Millisecond)
	v, _ = l.TileView(tile.ID)
	assert.Equal(t, core.P(2, 0).Project(), v)
}

func TestTileIDsStableAcrossRestart(t *testing.T) {
	l := newLevel(t, "Aoo\nx")
	ids := l.TileIDs()
	assert.Equal(t, []core.TileID{1, 2, 3, 4}, ids)

	l.Restart()
	assert.Equal(t, ids, l.TileIDs())
	tile, ok := l.Tile(1)
	require.True(t, ok)
	assert.Equal(t, core.P(0, 0), tile.Pos)
}

func TestCenter(t *testing.T) {
	assert.Equal(t, core.Vec3{}, newLevel(t, "A").Center())

	c := newLevel(t, "Ao\nxo").Center()
	want := core.P(0, 0).Project().Lerp(core.P(1, 1).Project(), 0.5)
	assert.Equal(t, want, c)
}
