package core

// KeyState holds the four held/released directional keys indexed by Dir.
type KeyState [4]bool

// Any reports whether any key is held.
func (k KeyState) Any() bool {
	return k[0] || k[1] || k[2] || k[3]
}

// Count returns the number of held keys.
func (k KeyState) Count() int {
	n := 0
	for _, held := range k {
		if held {
			n++
		}
	}
	return n
}

// Resolve turns raw key state into at most one cardinal direction.
//
// On an isometric board two screen-adjacent keys are visually diagonal but
// only one of them is a usable grid axis near a boundary, so the scan uses
// grid occupancy around pos to pick the intended axis:
//
//   - slot i and slot i+1 both held: the earlier slot wins;
//   - slot i held alone and the cell toward i+3 is missing: snap to i;
//   - slot i+1 held alone and the cell toward i+1 is missing: snap to i.
//
// "Alone" means neither of the two slots opposite the pair is held.
// Slots are scanned in cyclic order and the first match wins.
func Resolve(keys KeyState, pos TilePos, g *Grid) (Dir, bool) {
	for i := range 4 {
		cur := Dir(i)
		next := cur.Cycle(1)
		opp := cur.Cycle(2)
		nextOpp := cur.Cycle(3)

		down := keys[cur]
		nextDown := keys[next]
		othersHeld := keys[opp] || keys[nextOpp]

		switch {
		case down && nextDown:
			return cur, true
		case down && !othersHeld && !g.Occupied(pos.Step(nextOpp)):
			return cur, true
		case nextDown && !othersHeld && !g.Occupied(pos.Step(next)):
			return cur, true
		}
	}
	return 0, false
}
