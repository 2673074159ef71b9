package core

// CanShift reports whether pushing from `from` toward d would move anything.
// The first cell in direction d must hold a tile, and every tile up to the
// first empty cell must be movable.
func CanShift(g *Grid, from TilePos, d Dir) bool {
	p := from.Step(d)
	if !g.Occupied(p) {
		return false
	}
	for {
		t := g.Get(p)
		if t == nil {
			return true
		}
		if !t.Type.Movable {
			return false
		}
		p = p.Step(d)
	}
}

// PushEngine performs chained shifts on a level's grid.
type PushEngine struct {
	grid   *Grid
	step   *StepAnimator
	events *EventQueue
}

// NewPushEngine binds an engine to a grid and its step animator.
func NewPushEngine(grid *Grid, step *StepAnimator, events *EventQueue) *PushEngine {
	return &PushEngine{grid: grid, step: step, events: events}
}

// CanShift is CanShift on the engine's grid.
func (e *PushEngine) CanShift(from TilePos, d Dir) bool {
	return CanShift(e.grid, from, d)
}

// ShiftChain rotates the push chain next to `from` one cell along d.
// Every tile in the chain moves exactly one cell and decays exactly one
// stage; tiles at the last stage are removed once the step commits.
//
// Callers must check CanShift with the same arguments first. The engine
// does not re-check and an infeasible shift corrupts the grid.
// It returns the number of tiles moved.
func (e *PushEngine) ShiftChain(from TilePos, d Dir) int {
	// Shifts never overlap animations.
	e.step.Commit()

	var carry *Tile
	moved := 0
	p := from.Step(d)
	for {
		t := e.grid.Get(p)
		if t == nil {
			break
		}
		next := p.Step(d)
		t.moveTo(next)
		e.emit(Event{Kind: EventTileMoved, Tile: t.ID, From: p, To: next})
		moved++

		if t.Type.DecaysTo != nil {
			t.Type = t.Type.DecaysTo
			e.emit(Event{Kind: EventTileChanged, Tile: t.ID, Type: t.Type})
		} else {
			e.step.schedule(t)
			e.emit(Event{Kind: EventTileRemoved, Tile: t.ID, Pos: next})
			t = nil
		}

		e.grid.Set(p, carry)
		carry = t
		p = next
	}
	e.grid.Set(p, carry)

	e.step.Start()
	return moved
}

func (e *PushEngine) emit(ev Event) {
	if e.events != nil {
		e.events.Push(ev)
	}
}
