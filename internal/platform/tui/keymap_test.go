package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/replant/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey(']'), core.ActionNext, false},
		{runeKey('['), core.ActionPrev, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('w'), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapDirKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg   tea.KeyMsg
		set   KeySet
		slots []int
	}{
		{runeKey('w'), KeySetMove, []int{core.KeyUp}},
		{runeKey('a'), KeySetMove, []int{core.KeyLeft}},
		{runeKey('9'), KeySetMove, []int{core.KeyUp, core.KeyRight}},
		{runeKey('1'), KeySetMove, []int{core.KeyDown, core.KeyLeft}},
		{tea.KeyMsg{Type: tea.KeyUp}, KeySetPush, []int{core.KeyUp}},
		{tea.KeyMsg{Type: tea.KeyLeft}, KeySetPush, []int{core.KeyLeft}},
		{runeKey('x'), KeySetNone, nil},
	}

	for _, tt := range tests {
		set, slots := km.MapDirKey(tt.msg)
		if set != tt.set || len(slots) != len(tt.slots) {
			t.Errorf("MapDirKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), set, slots, tt.set, tt.slots)
			continue
		}
		for i := range slots {
			if slots[i] != tt.slots[i] {
				t.Errorf("MapDirKey(%q) slot %d = %d, expected %d", tt.msg.String(), i, slots[i], tt.slots[i])
			}
		}
	}
}

func TestKeyLatch(t *testing.T) {
	start := time.Unix(1000, 0)
	l := NewKeyLatch(100 * time.Millisecond)

	if l.Held(start).Any() {
		t.Fatal("fresh latch should hold nothing")
	}

	l.Press(start, core.KeyUp)
	l.Press(start.Add(40*time.Millisecond), core.KeyRight)

	held := l.Held(start.Add(60 * time.Millisecond))
	if !held[core.KeyUp] || !held[core.KeyRight] {
		t.Errorf("presses within the window should chord, got %v", held)
	}

	held = l.Held(start.Add(120 * time.Millisecond))
	if held[core.KeyUp] {
		t.Error("first key should expire after the window")
	}
	if !held[core.KeyRight] {
		t.Error("second key should still be held")
	}

	l.Release()
	if l.Held(start.Add(60 * time.Millisecond)).Any() {
		t.Error("Release should clear all keys")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
