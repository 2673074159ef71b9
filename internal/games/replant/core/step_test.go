package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

func TestStepLifecycle(t *testing.T) {
	l := newLevel(t, "A44")
	step := l.Step()
	assert.False(t, step.Active())
	assert.Equal(t, 1.0, step.Progress())

	require.True(t, l.TryPush(core.DirRight))
	assert.True(t, step.Active())
	assert.Equal(t, 0.0, step.RawProgress())

	// Exactly one step length is not past the end yet.
	l.Advance(100 * time.Millisecond)
	assert.True(t, step.Active())
	assert.InDelta(t, 1.0, step.Progress(), 1e-9)

	l.Advance(time.Millisecond)
	assert.False(t, step.Active())

	l.Grid().Each(func(p core.TilePos, tile *core.Tile) {
		assert.Equal(t, tile.Pos, tile.PrevPos, "tile at %v", p)
		assert.Equal(t, p, tile.Pos)
	})
	assert.Equal(t, 1, countKind(l.Events(), core.EventStepCommitted))
}

func TestShiftDuringStepCommitsFirst(t *testing.T) {
	l := newLevel(t, "A44")
	require.True(t, l.TryPush(core.DirRight))
	l.Events()

	var q core.EventQueue
	engine := core.NewPushEngine(l.Grid(), l.Step(), &q)
	require.True(t, engine.CanShift(core.P(1, 0), core.DirRight))

	// The committed event lands on the step's own queue before the shift.
	engine.ShiftChain(core.P(1, 0), core.DirRight)
	assert.Equal(t, []core.EventKind{core.EventStepCommitted}, kinds(l.Events()))
	assert.True(t, l.Step().Active())
	assert.Equal(t, 0.0, l.Step().RawProgress())

	assert.Equal(t, '2', codeAt(l.Grid(), core.P(3, 0)))
	assert.Equal(t, '2', codeAt(l.Grid(), core.P(4, 0)))
}

func TestForcedCommitWhileIdleIsNoop(t *testing.T) {
	l := newLevel(t, "A4")
	l.Step().Commit()
	assert.False(t, l.Step().Active())
	assert.Empty(t, l.Events())
}

func TestStepDefaultLength(t *testing.T) {
	s := core.NewStepAnimator(core.NewGrid(), 0, nil)
	assert.Equal(t, time.Second, s.Length())
	assert.False(t, s.Advance(time.Hour))
}
