package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/replant/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an edge-triggered action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "]", "n":
		return core.ActionNext, false
	case "[":
		return core.ActionPrev, false
	}

	return core.ActionNone, false
}

// KeySet says which held key set a directional key belongs to.
type KeySet int

const (
	KeySetNone KeySet = iota
	KeySetMove
	KeySetPush
)

// MapDirKey translates a directional key to its key set and the slots it
// holds. Walking uses WASD, pushing uses the arrows. The number keys
// 9, 3, 1 and 7 hold two walking keys at once, one per screen diagonal.
func (km *KeyMapper) MapDirKey(msg tea.KeyMsg) (KeySet, []int) {
	switch msg.String() {
	case "w":
		return KeySetMove, []int{core.KeyUp}
	case "d":
		return KeySetMove, []int{core.KeyRight}
	case "s":
		return KeySetMove, []int{core.KeyDown}
	case "a":
		return KeySetMove, []int{core.KeyLeft}
	case "9":
		return KeySetMove, []int{core.KeyUp, core.KeyRight}
	case "3":
		return KeySetMove, []int{core.KeyRight, core.KeyDown}
	case "1":
		return KeySetMove, []int{core.KeyDown, core.KeyLeft}
	case "7":
		return KeySetMove, []int{core.KeyLeft, core.KeyUp}
	case "up":
		return KeySetPush, []int{core.KeyUp}
	case "right":
		return KeySetPush, []int{core.KeyRight}
	case "down":
		return KeySetPush, []int{core.KeyDown}
	case "left":
		return KeySetPush, []int{core.KeyLeft}
	}
	return KeySetNone, nil
}

// KeyLatch turns key press events into held key state. Terminals do not
// report key releases, so a key counts as held for a window after its
// last press. Presses inside the same window combine into a chord.
type KeyLatch struct {
	window time.Duration
	last   [4]time.Time
}

// NewKeyLatch creates a latch with the given hold window.
func NewKeyLatch(window time.Duration) *KeyLatch {
	return &KeyLatch{window: window}
}

// Press records a press of the given slots.
func (l *KeyLatch) Press(now time.Time, slots ...int) {
	for _, s := range slots {
		l.last[s] = now
	}
}

// Held returns the keys pressed within the window before now.
func (l *KeyLatch) Held(now time.Time) core.DirKeys {
	var keys core.DirKeys
	for i, t := range l.last {
		keys[i] = !t.IsZero() && now.Sub(t) <= l.window
	}
	return keys
}

// Release forgets all presses. Called once a key set has been consumed
// so a single tap is not applied twice.
func (l *KeyLatch) Release() {
	l.last = [4]time.Time{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
