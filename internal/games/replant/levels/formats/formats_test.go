package formats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/games/replant/levels/formats"
)

func TestParseYAMLDefaults(t *testing.T) {
	pack, err := formats.ParseYAML([]byte(`
id: p
levels:
  - map: "AF"
  - id: named
    name: Named
    file: named.txt
`))
	require.NoError(t, err)
	assert.Equal(t, "p", pack.Name)
	require.Len(t, pack.Levels, 2)
	assert.Equal(t, "01", pack.Levels[0].ID)
	assert.Equal(t, "01", pack.Levels[0].Name)
	assert.Equal(t, "AF", pack.Levels[0].Text)
	assert.Equal(t, "named.txt", pack.Levels[1].File)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "id: [x"},
		{"no id", "levels:\n  - map: AF\n"},
		{"no levels", "id: p\n"},
		{"duplicate ids", "id: p\nlevels:\n  - {id: a, map: AF}\n  - {id: a, map: AF}\n"},
		{"map and file", "id: p\nlevels:\n  - {map: AF, file: a.txt}\n"},
		{"neither", "id: p\nlevels:\n  - {id: a}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := formats.ParseYAML([]byte("id: p\n"))
	assert.ErrorIs(t, err, formats.ErrEmptyPack)
}

func TestParseText(t *testing.T) {
	lvl := formats.ParseText([]byte("AF\n"), "dir/07-tor_intro.txt")
	assert.Equal(t, "07-tor_intro", lvl.ID)
	assert.Equal(t, "Tor intro", lvl.Name)
	assert.Equal(t, "AF\n", lvl.Text)
}

func TestNameFromID(t *testing.T) {
	assert.Equal(t, "Hello", formats.NameFromID("hello"))
	assert.Equal(t, "42", formats.NameFromID("42"))
	assert.Equal(t, "Laufsteg intro 2", formats.NameFromID("11-laufsteg-intro-2"))
}
