package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/replant/internal/storage"
)

func levelMenu(progress int) LevelMenuModel {
	return NewLevelMenuModel("Test", []string{"One", "Two", "Three", "Four"}, progress, 60, 30)
}

func pressMenu(m LevelMenuModel, msgs ...tea.KeyMsg) LevelMenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(LevelMenuModel)
	}
	return m
}

func TestLevelMenuContinue(t *testing.T) {
	tests := []struct {
		progress int
		expected int
	}{
		{storage.NoProgress, 1},
		{0, 2},
		{2, 4},
		{3, 4}, // all cleared replays the last level
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	for _, tt := range tests {
		m := pressMenu(levelMenu(tt.progress), enter)
		sel := m.Selected()
		if sel == nil {
			t.Fatalf("progress %d: expected a selection", tt.progress)
		}
		if sel.Level != tt.expected {
			t.Errorf("progress %d: continue = level %d, expected %d", tt.progress, sel.Level, tt.expected)
		}
	}
}

func TestLevelMenuPickLevel(t *testing.T) {
	down := tea.KeyMsg{Type: tea.KeyDown}
	m := pressMenu(levelMenu(storage.NoProgress), down, down, down, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || sel.Level != 3 {
		t.Fatalf("expected level 3, got %+v", sel)
	}
}

func TestLevelMenuCursorBounds(t *testing.T) {
	down := tea.KeyMsg{Type: tea.KeyDown}
	m := pressMenu(levelMenu(storage.NoProgress), down, down, down, down, down, down)
	if m.cursor != 4 {
		t.Errorf("cursor = %d, expected 4", m.cursor)
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	m = pressMenu(m, up, up, up, up, up, up)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
}

func TestLevelMenuBack(t *testing.T) {
	m := pressMenu(levelMenu(0), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.Selected() != nil {
		t.Error("esc should go back without a selection")
	}
}

func TestLevelMenuView(t *testing.T) {
	out := levelMenu(1).View()
	for _, want := range []string{"TEST", "Continue (level 3)", "✓  1. One", "4. Four"} {
		if !strings.Contains(out, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"5.34s", "0:05.3"},
		{"1m2.05s", "1:02.1"},
		{"0s", "0:00.0"},
	}
	for _, tt := range tests {
		d, err := time.ParseDuration(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := formatDuration(d); got != tt.expected {
			t.Errorf("formatDuration(%s) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
