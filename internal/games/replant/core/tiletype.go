package core

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownTileCode is returned when a character has no tile type.
	ErrUnknownTileCode = errors.New("unknown tile code")
	// ErrDuplicateCode is returned when two tile types share a code.
	ErrDuplicateCode = errors.New("duplicate tile code")
	// ErrDecayCycle is returned when a decay chain loops back on itself.
	ErrDecayCycle = errors.New("decay chain contains a cycle")
)

// TileType is an immutable tile descriptor.
type TileType struct {
	Code     rune
	Name     string
	Movable  bool
	DecaysTo *TileType // nil means the tile is removed when it decays
}

// String returns the type's name and code.
func (t *TileType) String() string {
	if t == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s(%c)", t.Name, t.Code)
}

// Stage returns the number of decay steps left before removal,
// or 0 for types that never decay.
func (t *TileType) Stage() int {
	if t == nil || !t.Movable {
		return 0
	}
	n := 0
	for cur := t; cur != nil; cur = cur.DecaysTo {
		n++
	}
	return n
}

// TypeSpec describes one entry for NewTileTable.
// DecaysTo is the code of the next stage; 0 means the tile is removed.
// Movable types always decay; non-movable types never do.
type TypeSpec struct {
	Code     rune
	Name     string
	Movable  bool
	DecaysTo rune
}

// TileTable is the registry mapping level codes to tile types.
// It is built once and shared read-only by every level.
type TileTable struct {
	byCode map[rune]*TileType
	order  []rune
}

// Codes used by the standard table.
const (
	CodeBase      = 'x'
	CodeGrassFull = 'o'
	CodeGrass4    = '4'
	CodeGrass3    = '3'
	CodeGrass2    = '2'
	CodeGrass1    = '1'
)

// StandardTypes is the tile set used by the built-in levels.
var StandardTypes = []TypeSpec{
	{Code: CodeBase, Name: "base"},
	{Code: CodeGrassFull, Name: "grass", Movable: true, DecaysTo: CodeGrass4},
	{Code: CodeGrass4, Name: "grass4", Movable: true, DecaysTo: CodeGrass3},
	{Code: CodeGrass3, Name: "grass3", Movable: true, DecaysTo: CodeGrass2},
	{Code: CodeGrass2, Name: "grass2", Movable: true, DecaysTo: CodeGrass1},
	{Code: CodeGrass1, Name: "grass1", Movable: true},
}

// NewTileTable builds a table from specs, checking that codes are unique,
// that every decay target exists and that no decay chain is cyclic.
func NewTileTable(specs []TypeSpec) (*TileTable, error) {
	t := &TileTable{byCode: make(map[rune]*TileType, len(specs))}

	for _, s := range specs {
		if _, exists := t.byCode[s.Code]; exists {
			return nil, fmt.Errorf("tile table: %w: %q", ErrDuplicateCode, s.Code)
		}
		t.byCode[s.Code] = &TileType{Code: s.Code, Name: s.Name, Movable: s.Movable}
		t.order = append(t.order, s.Code)
	}

	for _, s := range specs {
		if s.DecaysTo == 0 {
			continue
		}
		target, ok := t.byCode[s.DecaysTo]
		if !ok {
			return nil, fmt.Errorf("tile table: decay target of %q: %w: %q", s.Code, ErrUnknownTileCode, s.DecaysTo)
		}
		t.byCode[s.Code].DecaysTo = target
	}

	// A chain can visit each type at most once.
	for _, code := range t.order {
		steps := 0
		for cur := t.byCode[code]; cur != nil; cur = cur.DecaysTo {
			steps++
			if steps > len(t.order) {
				return nil, fmt.Errorf("tile table: %w starting at %q", ErrDecayCycle, code)
			}
		}
	}

	return t, nil
}

// MustTileTable is like NewTileTable but panics on error.
// Intended for package-level tables built from constant specs.
func MustTileTable(specs []TypeSpec) *TileTable {
	t, err := NewTileTable(specs)
	if err != nil {
		panic(err)
	}
	return t
}

// StandardTable returns a fresh table of the standard tile set.
func StandardTable() *TileTable {
	return MustTileTable(StandardTypes)
}

// Lookup returns the type for a code.
func (t *TileTable) Lookup(code rune) (*TileType, error) {
	tt, ok := t.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTileCode, code)
	}
	return tt, nil
}

// MustLookup is like Lookup but panics on unknown codes.
func (t *TileTable) MustLookup(code rune) *TileType {
	tt, err := t.Lookup(code)
	if err != nil {
		panic(err)
	}
	return tt
}

// Types returns all types in registration order.
func (t *TileTable) Types() []*TileType {
	out := make([]*TileType, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, t.byCode[c])
	}
	return out
}

// Codes returns all registered codes sorted.
func (t *TileTable) Codes() []rune {
	out := make([]rune, len(t.order))
	copy(out, t.order)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
