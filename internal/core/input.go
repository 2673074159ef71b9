package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart the current level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionNext           // ] - skip to the next level
	ActionPrev           // [ - go back one level
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	default:
		return "Unknown"
	}
}

// Key slots of a DirKeys value, in cyclic order.
const (
	KeyUp = iota
	KeyRight
	KeyDown
	KeyLeft
)

// DirKeys is the held state of four directional keys, indexed by the
// Key* slots.
type DirKeys [4]bool

// Any reports whether any key is held.
func (k DirKeys) Any() bool {
	return k[KeyUp] || k[KeyRight] || k[KeyDown] || k[KeyLeft]
}

// InputFrame represents the input state for one simulation tick.
// Actions are edge-triggered; Move and Push are levels (held or not).
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Move holds the walking keys, Push the pushing keys.
	Move DirKeys
	Push DirKeys
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and key state for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Move = DirKeys{}
	f.Push = DirKeys{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Move = f.Move
	clone.Push = f.Push
	return clone
}
