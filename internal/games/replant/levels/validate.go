package levels

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/replant/internal/games/replant/core"
)

// Report collects problems found in a level layout. Errors make a level
// unplayable; warnings are advisory.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the level has no errors.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks a parsed layout for a goal and whether the goal can be
// walked to from the start without pushing anything. Pushes can open or
// close paths, so an unreachable goal is only a warning.
func Validate(layout *core.Layout) Report {
	var r Report

	goals := layout.Goals()
	if len(goals) == 0 {
		r.Errors = append(r.Errors, "level has no goal flag")
		return r
	}

	reach := Reachable(layout)
	for _, g := range goals {
		if reach.Has(g) {
			return r
		}
	}
	r.Warnings = append(r.Warnings, "goal is not reachable without pushing")
	return r
}

// Reachable returns the cells the player can walk to from the start.
func Reachable(layout *core.Layout) mapset.Set[core.TilePos] {
	visited := mapset.New[core.TilePos]()
	start := core.TilePos{}
	visited.Put(start)

	queue := []core.TilePos{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range core.Dirs {
			n := p.Step(d)
			if visited.Has(n) {
				continue
			}
			c, ok := layout.Cells[n]
			if !ok || c.HasRock {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return visited
}
