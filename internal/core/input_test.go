package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionRestart) {
		t.Error("empty frame should not have actions")
	}

	f.Set(ActionRestart)
	if !f.Has(ActionRestart) {
		t.Error("Has(ActionRestart) = false after Set")
	}
	if f.Has(ActionQuit) {
		t.Error("Has(ActionQuit) = true, expected false")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionNext)
	f.Move[KeyUp] = true
	f.Push[KeyLeft] = true

	c := f.Clone()
	f.Clear()

	if f.Has(ActionNext) || f.Move.Any() || f.Push.Any() {
		t.Error("Clear should reset actions and keys")
	}
	if !c.Has(ActionNext) || !c.Move[KeyUp] || !c.Push[KeyLeft] {
		t.Error("Clone should not share state with the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionRestart, "Restart"},
		{ActionNext, "Next"},
		{ActionPrev, "Prev"},
		{Action(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tt.action, got, tt.expected)
		}
	}
}
