package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

func TestStandardDecayChain(t *testing.T) {
	table := core.StandardTable()

	var chain []rune
	for cur := table.MustLookup(core.CodeGrassFull); cur != nil; cur = cur.DecaysTo {
		chain = append(chain, cur.Code)
	}
	assert.Equal(t, []rune{'o', '4', '3', '2', '1'}, chain)

	assert.Equal(t, 5, table.MustLookup('o').Stage())
	assert.Equal(t, 1, table.MustLookup('1').Stage())
	assert.Equal(t, 0, table.MustLookup('x').Stage())
	assert.False(t, table.MustLookup('x').Movable)
}

func TestLookupUnknown(t *testing.T) {
	_, err := core.StandardTable().Lookup('?')
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownTileCode))
}

func TestNewTileTableRejects(t *testing.T) {
	tests := []struct {
		name  string
		specs []core.TypeSpec
		want  error
	}{
		{
			name:  "duplicate",
			specs: []core.TypeSpec{{Code: 'a'}, {Code: 'a'}},
			want:  core.ErrDuplicateCode,
		},
		{
			name:  "missing target",
			specs: []core.TypeSpec{{Code: 'a', Movable: true, DecaysTo: 'b'}},
			want:  core.ErrUnknownTileCode,
		},
		{
			name: "cycle",
			specs: []core.TypeSpec{
				{Code: 'a', Movable: true, DecaysTo: 'b'},
				{Code: 'b', Movable: true, DecaysTo: 'a'},
			},
			want: core.ErrDecayCycle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.NewTileTable(tt.specs)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCodesSorted(t *testing.T) {
	assert.Equal(t, []rune{'1', '2', '3', '4', 'o', 'x'}, core.StandardTable().Codes())
}
