package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/replant/internal/core"
)

// islandPalette maps screen colors to 256-color styles tuned for the
// board: greens for grass, sea blues for the ocean.
func islandPalette() map[core.Color]lipgloss.Style {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return map[core.Color]lipgloss.Style{
		core.ColorDefault:       lipgloss.NewStyle(),
		core.ColorRed:           fg("160"),
		core.ColorGreen:         fg("34"),
		core.ColorYellow:        fg("178"),
		core.ColorBlue:          fg("25"),
		core.ColorMagenta:       fg("5"),
		core.ColorCyan:          fg("37"),
		core.ColorWhite:         fg("252"),
		core.ColorBrightRed:     fg("196"),
		core.ColorBrightGreen:   fg("46"),
		core.ColorBrightYellow:  fg("226"),
		core.ColorBrightBlue:    fg("33"),
		core.ColorBrightMagenta: fg("13"),
		core.ColorBrightCyan:    fg("51"),
		core.ColorBrightWhite:   fg("15"),
		core.ColorOrange:        fg("208"),
		core.ColorGray:          fg("244"),
	}
}

// RenderScreen converts a Screen buffer to a string for display using the
// current theme's board palette. A theme without a palette renders plain
// text. Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	palette := GetTheme().Board

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if palette == nil {
			sb.WriteString(s.Row(y))
			continue
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := palette[startColor]
			if !ok {
				style = palette[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
