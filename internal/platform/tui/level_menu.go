package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/storage"
)

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	Level int // 1-N
}

// LevelMenuModel is the level picker for one pack.
type LevelMenuModel struct {
	title        string
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	levelNames   []string
	progress     int // highest cleared index
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates a level picker. Row 0 continues after the
// highest cleared level; row i (1-based) is level i.
func NewLevelMenuModel(title string, levelNames []string, progress, width, height int) LevelMenuModel {
	return LevelMenuModel{
		title:      title,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		levelNames: levelNames,
		progress:   progress,
		choosing:   true,
		theme:      GetTheme(),
	}
}

// continueLevel returns the 1-based level the continue row starts.
func (m LevelMenuModel) continueLevel() int {
	return min(m.progress+2, max(len(m.levelNames), 1))
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levelNames) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levelNames) == 0 {
			return m, nil
		}
		m.choosing = false
		if m.cursor == 0 {
			m.selection = LevelSelection{Level: m.continueLevel()}
		} else {
			m.selection = LevelSelection{Level: m.cursor}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems returns how many level rows fit.
func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3) // Account for header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	row := max(m.cursor-1, 0) // level rows start after the continue row

	if row < m.scrollOffset {
		m.scrollOffset = row
	} else if row >= m.scrollOffset+visible {
		m.scrollOffset = row - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	if len(m.levelNames) == 0 {
		b.WriteString(centerText(m.theme.MenuItemLocked.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	// Continue option
	if m.scrollOffset == 0 && len(m.levelNames) > 0 {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if m.cursor == 0 {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		label := "Start from Beginning"
		if m.progress != storage.NoProgress {
			label = fmt.Sprintf("Continue (level %d)", m.continueLevel())
		}
		b.WriteString(centerText(style.Render(cursor+label), m.width))
		b.WriteString("\n")
	}

	// Level list
	startIdx := m.scrollOffset
	endIdx := min(startIdx+m.visibleItems(), len(m.levelNames))

	for i := startIdx; i < endIdx; i++ {
		cursor := "  "
		mark := " "
		style := m.theme.MenuItemNormal
		switch {
		case i <= m.progress:
			mark = "✓"
			style = m.theme.MenuItemDone
		case i > m.progress+1:
			style = m.theme.MenuItemLocked
		}
		if i+1 == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := fmt.Sprintf("%s%s %2d. %s", cursor, mark, i+1, m.levelNames[i])
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	// Scroll indicators
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.levelNames) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// LevelMenuResult holds the outcome of the level picker.
type LevelMenuResult struct {
	Selection *LevelSelection
	Back      bool
	Quit      bool
}

// RunLevelSelector runs the level picker for a pack.
func RunLevelSelector(title string, levelNames []string, progress int, cfg core.RuntimeConfig) (LevelMenuResult, error) {
	model := NewLevelMenuModel(title, levelNames, progress, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return LevelMenuResult{}, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return LevelMenuResult{Quit: true}, nil
	}

	return LevelMenuResult{
		Selection: m.Selected(),
		Back:      m.WantsBack(),
		Quit:      m.IsQuitting(),
	}, nil
}
