// Package core provides the simulation core for the Replant puzzle game.
// It is UI-agnostic and deterministic for a given RNG seed: the platform
// feeds it elapsed time and key state, and it emits events describing how
// tiles moved, changed or vanished.
package core

import "fmt"

// TilePos is an integer grid coordinate.
// Level text lines map to Y, characters within a line map to X.
type TilePos struct {
	X int
	Y int
}

// P is a convenience constructor for TilePos.
func P(x, y int) TilePos {
	return TilePos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p TilePos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the component-wise sum of two positions.
func (p TilePos) Add(o TilePos) TilePos {
	return TilePos{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference p - o.
func (p TilePos) Sub(o TilePos) TilePos {
	return TilePos{X: p.X - o.X, Y: p.Y - o.Y}
}

// Step returns the neighbouring position in direction d.
func (p TilePos) Step(d Dir) TilePos {
	return p.Add(d.Delta())
}

// Manhattan returns the Manhattan distance to another position.
func (p TilePos) Manhattan(o TilePos) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Vec3 is a presentation coordinate produced by the isometric projection.
// X and Y are screen-plane units (Y grows upward), Z is a depth hint where
// larger values are further away.
type Vec3 struct {
	X, Y, Z float64
}

// Lerp blends from a to b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// Project maps a grid position onto the isometric presentation plane.
func (p TilePos) Project() Vec3 {
	x, y := float64(p.X), float64(p.Y)
	return Vec3{
		X: 0.5*x + 0.5*y,
		Y: -0.25*x + 0.25*y,
		Z: y - x,
	}
}

// Dir is a cardinal direction. The numeric values define the cyclic order
// used by the input resolver: up, right, down, left.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists all directions in cyclic order.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the grid offset for one step in this direction.
// Up increases Y, which the isometric projection draws toward the top right.
func (d Dir) Delta() TilePos {
	switch d {
	case DirUp:
		return TilePos{0, 1}
	case DirRight:
		return TilePos{1, 0}
	case DirDown:
		return TilePos{0, -1}
	case DirLeft:
		return TilePos{-1, 0}
	default:
		return TilePos{}
	}
}

// Cycle returns the direction k slots after d in the cyclic order.
func (d Dir) Cycle(k int) Dir {
	return Dir((int(d) + k%4 + 4) % 4)
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return d.Cycle(2)
}
