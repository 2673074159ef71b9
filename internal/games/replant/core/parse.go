package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPlayer is returned when level text has no player start.
	ErrNoPlayer = errors.New("level has no player start")
	// ErrMultiplePlayers is returned when level text has more than one start.
	ErrMultiplePlayers = errors.New("level has more than one player start")
	// ErrNotEncodable is returned when a cell has no level text marker,
	// such as a rock on decayed grass or a flag on grass.
	ErrNotEncodable = errors.New("cell cannot be written as level text")
)

// Level text markers that are not tile types themselves.
const (
	MarkPlayer    = 'A' // player start on a base tile
	MarkGoal      = 'F' // goal flag on a base tile
	MarkRockBase  = 'X' // rock on a base tile
	MarkRockGrass = 'O' // rock on full grass
	MarkEmpty     = ' '
)

// CellSpec is the initial content of one cell in a layout.
type CellSpec struct {
	Type    *TileType
	HasFlag bool
	HasRock bool
}

// Layout is a parsed, immutable level definition. Positions are relative
// to the player start, which is always (0,0).
type Layout struct {
	Cells map[TilePos]CellSpec
	// Origin is the player start in text coordinates (column, line).
	Origin TilePos
	// Width and Height are the text extents (longest line, line count).
	Width  int
	Height int
}

// Goals returns the positions of all flagged cells.
func (l *Layout) Goals() []TilePos {
	var out []TilePos
	for p, c := range l.Cells {
		if c.HasFlag {
			out = append(out, p)
		}
	}
	sortRowMajor(out)
	return out
}

// ParseLevel reads level text using the given tile table.
// Lines may have different lengths; a space is an empty cell.
// Unknown characters abort the load.
func ParseLevel(text string, table *TileTable) (*Layout, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	cells := make(map[TilePos]CellSpec)
	var start TilePos
	players := 0
	width := 0

	for y, line := range lines {
		x := 0
		for _, code := range line {
			pos := P(x, y)
			x++
			if code == MarkEmpty {
				continue
			}

			spec, isPlayer, err := cellFor(code, table)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", y+1, x, err)
			}
			if isPlayer {
				players++
				start = pos
			}
			cells[pos] = spec
		}
		width = max(width, x)
	}

	switch {
	case players == 0:
		return nil, ErrNoPlayer
	case players > 1:
		return nil, fmt.Errorf("%w (%d found)", ErrMultiplePlayers, players)
	}

	rebased := make(map[TilePos]CellSpec, len(cells))
	for p, c := range cells {
		rebased[p.Sub(start)] = c
	}

	return &Layout{
		Cells:  rebased,
		Origin: start,
		Width:  width,
		Height: len(lines),
	}, nil
}

// cellFor maps one level character to its cell content.
func cellFor(code rune, table *TileTable) (CellSpec, bool, error) {
	switch code {
	case MarkPlayer:
		base, err := table.Lookup(CodeBase)
		return CellSpec{Type: base}, true, err
	case MarkGoal:
		base, err := table.Lookup(CodeBase)
		return CellSpec{Type: base, HasFlag: true}, false, err
	case MarkRockBase:
		base, err := table.Lookup(CodeBase)
		return CellSpec{Type: base, HasRock: true}, false, err
	case MarkRockGrass:
		grass, err := table.Lookup(CodeGrassFull)
		return CellSpec{Type: grass, HasRock: true}, false, err
	}
	tt, err := table.Lookup(code)
	if err != nil {
		return CellSpec{}, false, err
	}
	return CellSpec{Type: tt}, false, nil
}

// Encode renders a grid back to level text with the player at playerPos.
// Rows are emitted from the minimum occupied Y upward. Cells that level
// text cannot express fail with ErrNotEncodable instead of being written
// lossily.
func Encode(g *Grid, playerPos TilePos) (string, error) {
	lo, hi, ok := g.Bounds()
	if !ok {
		return string(MarkPlayer), nil
	}
	lo.X, lo.Y = min(lo.X, playerPos.X), min(lo.Y, playerPos.Y)
	hi.X, hi.Y = max(hi.X, playerPos.X), max(hi.Y, playerPos.Y)

	var sb strings.Builder
	for y := lo.Y; y <= hi.Y; y++ {
		if y > lo.Y {
			sb.WriteByte('\n')
		}
		var row strings.Builder
		for x := lo.X; x <= hi.X; x++ {
			p := P(x, y)
			code, err := codeFor(g.Get(p), p == playerPos)
			if err != nil {
				return "", fmt.Errorf("cell %v: %w", p, err)
			}
			row.WriteRune(code)
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
	}
	return sb.String(), nil
}

func codeFor(t *Tile, player bool) (rune, error) {
	switch {
	case player && (t == nil || t.Type.Code != CodeBase || t.HasFlag || t.HasRock):
		return 0, ErrNotEncodable
	case player:
		return MarkPlayer, nil
	case t == nil:
		return MarkEmpty, nil
	case t.HasFlag && (t.Type.Code != CodeBase || t.HasRock):
		return 0, ErrNotEncodable
	case t.HasFlag:
		return MarkGoal, nil
	case t.HasRock && t.Type.Code == CodeBase:
		return MarkRockBase, nil
	case t.HasRock && t.Type.Code == CodeGrassFull:
		return MarkRockGrass, nil
	case t.HasRock:
		return 0, ErrNotEncodable
	default:
		return t.Type.Code, nil
	}
}
