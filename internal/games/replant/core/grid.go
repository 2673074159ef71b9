package core

import "sort"

// TileID identifies a tile for the lifetime of a level instance.
// Renderers key their presentation state by it.
type TileID int

// Tile is the mutable game-state record for one occupied cell.
type Tile struct {
	ID      TileID
	Type    *TileType
	HasFlag bool // goal marker
	HasRock bool // obstacle overlay, blocks walking

	// Pos is where the tile is in game state. PrevPos is where it was when
	// the current step started; renderers blend between them.
	Pos     TilePos
	PrevPos TilePos
}

// Walkable reports whether the player may stand on the tile.
func (t *Tile) Walkable() bool {
	return t != nil && !t.HasRock
}

// moveTo records a move target for the running step.
func (t *Tile) moveTo(p TilePos) {
	t.PrevPos = t.Pos
	t.Pos = p
}

// settle collapses the interpolation endpoint.
func (t *Tile) settle() {
	t.PrevPos = t.Pos
}

// Grid is sparse tile storage keyed by position.
// A missing key means "no tile", which also models off-level cells.
type Grid struct {
	cells map[TilePos]*Tile
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make(map[TilePos]*Tile)}
}

// Get returns the tile at p, or nil when the cell is empty.
func (g *Grid) Get(p TilePos) *Tile {
	return g.cells[p]
}

// Set stores t at p. A nil tile removes the entry.
func (g *Grid) Set(p TilePos, t *Tile) {
	if t == nil {
		delete(g.cells, p)
		return
	}
	g.cells[p] = t
}

// Occupied reports whether p holds a tile.
func (g *Grid) Occupied(p TilePos) bool {
	_, ok := g.cells[p]
	return ok
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Positions returns occupied positions in row-major order (Y, then X).
func (g *Grid) Positions() []TilePos {
	out := make([]TilePos, 0, len(g.cells))
	for p := range g.cells {
		out = append(out, p)
	}
	sortRowMajor(out)
	return out
}

// sortRowMajor orders positions by Y, then X.
func sortRowMajor(ps []TilePos) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

// Each calls fn for every occupied cell in row-major order.
func (g *Grid) Each(fn func(p TilePos, t *Tile)) {
	for _, p := range g.Positions() {
		fn(p, g.cells[p])
	}
}

// Bounds returns the min and max occupied positions.
// ok is false for an empty grid.
func (g *Grid) Bounds() (lo, hi TilePos, ok bool) {
	for p := range g.cells {
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi, ok
}
