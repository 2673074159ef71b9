package core

import "time"

// StepAnimator is the per-level step clock. Game state changes instantly
// when a shift starts; the animator then spends one step length letting
// renderers interpolate tiles from PrevPos to Pos, and commits at the end.
type StepAnimator struct {
	length   time.Duration
	active   bool
	progress float64

	grid    *Grid
	pending []*Tile // decayed to nothing, still animating
	events  *EventQueue
}

// NewStepAnimator creates an idle animator bound to a grid.
func NewStepAnimator(grid *Grid, length time.Duration, events *EventQueue) *StepAnimator {
	if length <= 0 {
		length = time.Second
	}
	return &StepAnimator{length: length, grid: grid, events: events}
}

// Active reports whether a step is in flight.
func (s *StepAnimator) Active() bool {
	return s.active
}

// Progress returns the normalized step progress clamped to [0, 1].
// An idle animator reports 1: every tile sits at its current position.
func (s *StepAnimator) Progress() float64 {
	if !s.active {
		return 1
	}
	return min(max(s.progress, 0), 1)
}

// RawProgress returns the unclamped progress value.
func (s *StepAnimator) RawProgress() float64 {
	return s.progress
}

// Length returns the configured step length.
func (s *StepAnimator) Length() time.Duration {
	return s.length
}

// Pending returns tiles awaiting removal at the next commit.
func (s *StepAnimator) Pending() []*Tile {
	return s.pending
}

// schedule keeps a removed tile addressable until the step commits.
func (s *StepAnimator) schedule(t *Tile) {
	s.pending = append(s.pending, t)
}

// Start begins a new step with progress 0.
func (s *StepAnimator) Start() {
	s.active = true
	s.progress = 0
}

// Advance moves the step forward by dt and commits once progress passes 1.
// It reports whether a commit happened.
func (s *StepAnimator) Advance(dt time.Duration) bool {
	if !s.active {
		return false
	}
	s.progress += float64(dt) / float64(s.length)
	if s.progress > 1 {
		s.Commit()
		return true
	}
	return false
}

// Commit finishes the running step regardless of progress: every tile's
// previous position collapses onto its current one and pending removals
// are released. Committing an idle animator does nothing.
func (s *StepAnimator) Commit() {
	if !s.active {
		return
	}
	s.grid.Each(func(_ TilePos, t *Tile) {
		t.settle()
	})
	for _, t := range s.pending {
		t.settle()
	}
	s.pending = nil
	s.active = false
	s.progress = 0
	if s.events != nil {
		s.events.Push(Event{Kind: EventStepCommitted})
	}
}

// cancel drops the running step without committing.
func (s *StepAnimator) cancel() {
	s.active = false
	s.progress = 0
	s.pending = nil
}
