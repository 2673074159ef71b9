package core

// EventKind identifies what happened to the level.
type EventKind uint8

const (
	EventTileMoved EventKind = iota + 1
	EventTileChanged
	EventTileRemoved
	EventSplash
	EventStepCommitted
	EventPlayerMoved
	EventLevelWon
	EventReplantDone
	EventLevelCleared
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventTileMoved:
		return "TileMoved"
	case EventTileChanged:
		return "TileChanged"
	case EventTileRemoved:
		return "TileRemoved"
	case EventSplash:
		return "Splash"
	case EventStepCommitted:
		return "StepCommitted"
	case EventPlayerMoved:
		return "PlayerMoved"
	case EventLevelWon:
		return "LevelWon"
	case EventReplantDone:
		return "ReplantDone"
	case EventLevelCleared:
		return "LevelCleared"
	default:
		return "Unknown"
	}
}

// Event is a notification for presentation collaborators.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind
	Tile TileID    // TileMoved, TileChanged, TileRemoved
	From TilePos   // TileMoved, PlayerMoved
	To   TilePos   // TileMoved, PlayerMoved
	Pos  TilePos   // Splash, TileRemoved
	Type *TileType // TileChanged: the new type
}

// EventQueue buffers events until the collaborator drains them.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns all buffered events and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of buffered events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Reset discards buffered events.
func (q *EventQueue) Reset() {
	q.events = nil
}
