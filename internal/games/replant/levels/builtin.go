package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

//go:embed builtin
var builtinFS embed.FS

// Builtin returns the packs compiled into the binary.
func Builtin(table *core.TileTable) ([]Pack, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("builtin levels: %w", err)
	}
	packs, err := NewFSLoader(sub, "builtin", table).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("builtin levels: %w", err)
	}
	for i := range packs {
		packs[i].Builtin = true
	}
	return packs, nil
}
