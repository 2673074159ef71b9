package core

import (
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Replant is a delayed breadth-first restoration that spreads outward from
// a start cell in Manhattan rings, turning each visited tile into a random
// healthy variant. Flags and rocks stay on their tiles. It is advanced by elapsed time and cannot be
// restarted; a level runs at most one at a time.
type Replant struct {
	grid    *Grid
	healthy []*TileType
	rng     *rand.Rand
	events  *EventQueue
	delay   time.Duration

	visited  mapset.Set[TilePos]
	frontier []TilePos // every cell of the current ring, occupied or not
	ring     []TilePos // cells of the current ring not yet processed
	radius   int
	bound    int

	wait      time.Duration // time left before the next visit
	visits    int
	done      bool
	cancelled bool
}

// NewReplant prepares a propagation from start. The start cell is visited
// immediately. perTileDelay is the pause after each visited tile; callers
// usually derive it from a total duration divided by the occupied count.
func NewReplant(g *Grid, start TilePos, healthy []*TileType, rng *rand.Rand, perTileDelay time.Duration, events *EventQueue) *Replant {
	r := &Replant{
		grid:    g,
		healthy: healthy,
		rng:     rng,
		events:  events,
		delay:   perTileDelay,
		visited: mapset.New[TilePos](),
		bound:   RingBound(g),
	}
	r.visited.Put(start)
	r.frontier = []TilePos{start}
	r.ring = []TilePos{start}
	r.visitNext()
	return r
}

// PerTileDelay spreads a total duration over the occupied cells, so larger
// boards replant at roughly the same overall speed.
func PerTileDelay(total time.Duration, g *Grid) time.Duration {
	n := g.Len()
	if n == 0 {
		return total
	}
	return total / time.Duration(n)
}

// RingBound is the maximum traversal radius for a grid: twice its larger
// bounding-box dimension, since Manhattan rings reach corners later than
// Euclidean ones.
func RingBound(g *Grid) int {
	lo, hi, ok := g.Bounds()
	if !ok {
		return 0
	}
	w := hi.X - lo.X + 1
	h := hi.Y - lo.Y + 1
	return 2 * max(w, h)
}

// Done reports whether the propagation finished or was cancelled.
func (r *Replant) Done() bool {
	return r.done || r.cancelled
}

// Cancelled reports whether Cancel was called.
func (r *Replant) Cancelled() bool {
	return r.cancelled
}

// Visits returns how many occupied tiles were replanted so far.
func (r *Replant) Visits() int {
	return r.visits
}

// Radius returns the current ring index.
func (r *Replant) Radius() int {
	return r.radius
}

// Cancel stops the propagation; later Advance calls do nothing.
func (r *Replant) Cancel() {
	r.cancelled = true
	r.ring = nil
	r.frontier = nil
}

// Advance spends dt on pending visits and reports whether it finished
// during this call.
func (r *Replant) Advance(dt time.Duration) bool {
	if r.Done() {
		return false
	}
	r.wait -= dt
	for r.wait <= 0 && !r.done {
		r.visitNext()
	}
	return r.done
}

// visitNext processes cells until one occupied tile is replanted or the
// traversal ends. Empty cells cost no time but still extend the frontier.
func (r *Replant) visitNext() {
	for {
		if len(r.ring) == 0 && !r.expand() {
			r.done = true
			r.emit(Event{Kind: EventReplantDone})
			return
		}
		p := r.ring[0]
		r.ring = r.ring[1:]

		t := r.grid.Get(p)
		if t == nil {
			continue
		}
		r.replant(p, t)
		r.wait += r.delay
		return
	}
}

// expand builds the next ring from the unvisited neighbours of the
// previous one.
func (r *Replant) expand() bool {
	if r.radius >= r.bound {
		return false
	}
	var next []TilePos
	for _, p := range r.frontier {
		for _, d := range Dirs {
			n := p.Step(d)
			if r.visited.Has(n) {
				continue
			}
			r.visited.Put(n)
			next = append(next, n)
		}
	}
	r.radius++
	r.frontier = next
	r.ring = append([]TilePos(nil), next...)
	return len(next) > 0
}

func (r *Replant) replant(p TilePos, t *Tile) {
	r.visits++
	if len(r.healthy) > 0 {
		t.Type = r.healthy[r.rng.Intn(len(r.healthy))]
		r.emit(Event{Kind: EventTileChanged, Tile: t.ID, Type: t.Type})
	}
	r.emit(Event{Kind: EventSplash, Tile: t.ID, Pos: p})
}

func (r *Replant) emit(e Event) {
	if r.events != nil && !r.cancelled {
		r.events.Push(e)
	}
}
