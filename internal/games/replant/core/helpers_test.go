package core_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

// newLevel parses text with the standard table and instant jumps.
func newLevel(t *testing.T, text string, tweak ...func(*core.Options)) *core.Level {
	t.Helper()
	table := core.StandardTable()
	layout, err := core.ParseLevel(text, table)
	require.NoError(t, err)

	opts := core.DefaultOptions(table)
	opts.StepLength = 100 * time.Millisecond
	opts.JumpTime = 0
	opts.ReplantDuration = 0
	opts.ClearDelay = 0
	opts.Rand = rand.New(rand.NewSource(7))
	for _, fn := range tweak {
		fn(&opts)
	}
	return core.NewLevel(layout, opts)
}

func codeAt(g *core.Grid, p core.TilePos) rune {
	t := g.Get(p)
	if t == nil {
		return ' '
	}
	return t.Type.Code
}

func kinds(events []core.Event) []core.EventKind {
	out := make([]core.EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func countKind(events []core.Event, k core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
