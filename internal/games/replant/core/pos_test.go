package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

func TestDirCycle(t *testing.T) {
	tests := []struct {
		d    core.Dir
		k    int
		want core.Dir
	}{
		{core.DirUp, 1, core.DirRight},
		{core.DirLeft, 1, core.DirUp},
		{core.DirRight, 2, core.DirLeft},
		{core.DirDown, 3, core.DirRight},
		{core.DirUp, -1, core.DirLeft},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.Cycle(tt.k), "%v.Cycle(%d)", tt.d, tt.k)
	}
}

func TestDirDeltasCancel(t *testing.T) {
	for _, d := range core.Dirs {
		back := core.P(0, 0).Step(d).Step(d.Opposite())
		assert.Equal(t, core.P(0, 0), back, d.String())
	}
	assert.Equal(t, core.P(0, 1), core.DirUp.Delta())
	assert.Equal(t, core.P(1, 0), core.DirRight.Delta())
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 7, core.P(-2, 1).Manhattan(core.P(1, -3)))
	assert.Equal(t, 0, core.P(4, 4).Manhattan(core.P(4, 4)))
}

func TestProject(t *testing.T) {
	v := core.P(2, 4).Project()
	assert.InDelta(t, 3.0, v.X, 1e-9)
	assert.InDelta(t, 0.5, v.Y, 1e-9)
	assert.InDelta(t, 2.0, v.Z, 1e-9)

	mid := core.P(0, 0).Project().Lerp(core.P(2, 0).Project(), 0.5)
	assert.Equal(t, core.P(1, 0).Project(), mid)
}
