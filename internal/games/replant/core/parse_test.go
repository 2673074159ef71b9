package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

func TestParseRebasesOnPlayer(t *testing.T) {
	layout, err := core.ParseLevel("  x\nAo", core.StandardTable())
	require.NoError(t, err)

	assert.Equal(t, core.P(0, 1), layout.Origin)
	assert.Equal(t, 3, layout.Width)
	assert.Equal(t, 2, layout.Height)
	require.Len(t, layout.Cells, 3)

	assert.Equal(t, 'x', layout.Cells[core.P(0, 0)].Type.Code)
	assert.Equal(t, 'o', layout.Cells[core.P(1, 0)].Type.Code)
	assert.Equal(t, 'x', layout.Cells[core.P(2, -1)].Type.Code)
}

func TestParseOverlays(t *testing.T) {
	layout, err := core.ParseLevel("AXO\r\n F", core.StandardTable())
	require.NoError(t, err)

	rockBase := layout.Cells[core.P(1, 0)]
	assert.True(t, rockBase.HasRock)
	assert.Equal(t, 'x', rockBase.Type.Code)

	rockGrass := layout.Cells[core.P(2, 0)]
	assert.True(t, rockGrass.HasRock)
	assert.Equal(t, 'o', rockGrass.Type.Code)

	assert.Equal(t, []core.TilePos{core.P(1, 1)}, layout.Goals())
	assert.False(t, layout.Cells[core.P(0, 0)].HasFlag)
}

func TestLayoutGoalsRowMajor(t *testing.T) {
	layout, err := core.ParseLevel("F x F\nxAF\n F", core.StandardTable())
	require.NoError(t, err)

	want := []core.TilePos{core.P(-1, -1), core.P(3, -1), core.P(1, 0), core.P(0, 1)}
	assert.Equal(t, want, layout.Goals())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"unknown code", "A?", core.ErrUnknownTileCode},
		{"no player", "xo", core.ErrNoPlayer},
		{"two players", "A\nA", core.ErrMultiplePlayers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := core.ParseLevel(tt.text, core.StandardTable())
			assert.Nil(t, layout)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseUnknownCodeReportsPosition(t *testing.T) {
	_, err := core.ParseLevel("Ax\nx#", core.StandardTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2 column 2")
}

func TestEncodeRoundTrip(t *testing.T) {
	const text = "AXO\n F4"
	l := newLevel(t, text)
	got, err := core.Encode(l.Grid(), l.Player().Pos)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestEncodeRejectsDecayedRock(t *testing.T) {
	l := newLevel(t, "AO ")
	require.True(t, l.TryPush(core.DirRight))

	rock := l.Grid().Get(core.P(2, 0))
	require.NotNil(t, rock)
	require.True(t, rock.HasRock)
	assert.Equal(t, '4', rock.Type.Code)

	_, err := core.Encode(l.Grid(), l.Player().Pos)
	assert.ErrorIs(t, err, core.ErrNotEncodable)
}
