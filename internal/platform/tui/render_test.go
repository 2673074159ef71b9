package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/replant/internal/core"
)

func TestRenderScreenMonochrome(t *testing.T) {
	SetTheme(MonochromeTheme())
	defer SetTheme(DefaultTheme())

	s := core.NewScreen(4, 2)
	s.SetWithColor(0, 0, '▓', core.ColorGreen)
	s.DrawText(1, 1, "ab")

	out := RenderScreen(s)
	if strings.Contains(out, "\x1b[") {
		t.Error("monochrome output should carry no escape sequences")
	}
	expected := "▓   \n ab "
	if out != expected {
		t.Errorf("RenderScreen = %q, expected %q", out, expected)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextWithColor(0, 0, "abc", core.ColorOrange)
	s.DrawText(3, 0, "def")

	out := RenderScreen(s)
	for _, want := range []string{"abc", "def"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 0 {
		t.Error("a single row renders without newlines")
	}
}

func TestIslandPaletteCoversColors(t *testing.T) {
	palette := islandPalette()
	for _, c := range []core.Color{core.ColorDefault, core.ColorGreen, core.ColorBrightGreen, core.ColorOrange, core.ColorGray, core.ColorCyan} {
		if _, ok := palette[c]; !ok {
			t.Errorf("palette is missing color %v", c)
		}
	}
}
