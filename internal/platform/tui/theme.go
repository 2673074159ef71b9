package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/replant/internal/core"
)

// Theme contains the lipgloss styles used by the menus and the board.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemDone    lipgloss.Style // cleared levels
	MenuItemLocked  lipgloss.Style // levels past the next unplayed one
	MenuDescription lipgloss.Style
	HUDControls     lipgloss.Style
	// Board styles screen cells by color. Nil renders the board plain.
	Board map[core.Color]lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDControls:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Board:           islandPalette(),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemDone = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Board = nil
	return theme
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
