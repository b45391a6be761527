package help

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/marquee/internal/tui/styles"
)

// HelpContext represents which view the help is being shown in
type HelpContext int

const (
	GlobalContext HelpContext = iota
	SearchContext
	ResultsContext
	OverlayContext
)

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	Context     []HelpContext
}

// Model represents the help panel state
type Model struct {
	context      HelpContext
	width        int
	height       int
	visible      bool
	scrollOffset int
}

var allShortcuts = []Shortcut{
	{Key: "ctrl+c", Description: "Quit application", Context: []HelpContext{GlobalContext}},
	{Key: "?", Description: "Show/hide this help", Context: []HelpContext{GlobalContext}},
	{Key: "tab", Description: "Switch between search and results", Context: []HelpContext{GlobalContext}},

	{Key: "enter", Description: "Search", Context: []HelpContext{SearchContext}},
	{Key: "↑/↓", Description: "Recent searches", Context: []HelpContext{SearchContext}},
	{Key: "esc", Description: "Back to results", Context: []HelpContext{SearchContext}},

	{Key: "←↑↓→ or hjkl", Description: "Move between movies", Context: []HelpContext{ResultsContext}},
	{Key: "enter", Description: "Show movie details", Context: []HelpContext{ResultsContext}},
	{Key: "[ / ]", Description: "Previous / next page", Context: []HelpContext{ResultsContext}},
	{Key: "{ / }", Description: "First / last page", Context: []HelpContext{ResultsContext}},
	{Key: "/", Description: "Filter this page", Context: []HelpContext{ResultsContext}},
	{Key: "s", Description: "Edit search", Context: []HelpContext{ResultsContext}},
	{Key: "r", Description: "Retry after an error", Context: []HelpContext{ResultsContext}},
	{Key: "q", Description: "Quit", Context: []HelpContext{ResultsContext}},

	{Key: "o", Description: "Open on TMDB", Context: []HelpContext{OverlayContext}},
	{Key: "p", Description: "Open poster", Context: []HelpContext{OverlayContext}},
	{Key: "y / Y", Description: "Copy movie / poster link", Context: []HelpContext{OverlayContext}},
	{Key: "↑/↓", Description: "Scroll overview", Context: []HelpContext{OverlayContext}},
	{Key: "esc", Description: "Close details", Context: []HelpContext{OverlayContext}},
}

// New creates a new help model
func New() Model {
	return Model{context: GlobalContext}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resizing and, while visible, less-style scrolling
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.scrollOffset = max(m.scrollOffset-1, 0)
		case "down", "j":
			m.scrollOffset++
		case "home", "g":
			m.scrollOffset = 0
		case "end", "G":
			m.scrollOffset = 1 << 20 // clamped in View
		}
	}
	return m, nil
}

// View renders the help panel
func (m Model) View() string {
	if !m.visible || m.width == 0 || m.height == 0 {
		return ""
	}

	var content strings.Builder

	content.WriteString(styles.SubtitleStyle.Render("General"))
	content.WriteString("\n")
	for _, sc := range shortcutsFor(GlobalContext) {
		content.WriteString(renderShortcutLine(sc) + "\n")
	}

	if name := m.getContextName(); name != "" {
		content.WriteString("\n")
		content.WriteString(styles.SubtitleStyle.Render(name))
		content.WriteString("\n")
		for _, sc := range shortcutsFor(m.context) {
			content.WriteString(renderShortcutLine(sc) + "\n")
		}
	}

	lines := strings.Split(strings.TrimRight(content.String(), "\n"), "\n")

	available := max(m.height-8, 5)
	offset := min(m.scrollOffset, max(len(lines)-available, 0))
	end := min(offset+available, len(lines))

	title := "KEYBOARD SHORTCUTS"
	if len(lines) > available {
		title += fmt.Sprintf(" (%d-%d/%d)", offset+1, end, len(lines))
	}

	boxWidth := min(60, max(m.width-4, 30))
	titleBar := styles.PopupTitleStyle.
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		Render(title)

	body := strings.Join(lines[offset:end], "\n")
	footer := styles.HelpStyle.Render("j/k scroll • esc/? close")

	box := styles.PopupStyle.
		Padding(0, 2).
		Width(boxWidth).
		Render(titleBar + "\n\n" + body + "\n" + footer)

	if lipgloss.Height(box) >= m.height {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetContext sets the current help context
func (m *Model) SetContext(ctx HelpContext) {
	m.context = ctx
}

// Toggle toggles the visibility of the help panel
func (m *Model) Toggle() {
	m.visible = !m.visible
	m.scrollOffset = 0
}

// Hide hides the help panel
func (m *Model) Hide() {
	m.visible = false
	m.scrollOffset = 0
}

// IsVisible returns whether the help panel is visible
func (m Model) IsVisible() bool {
	return m.visible
}

func (m Model) getContextName() string {
	switch m.context {
	case SearchContext:
		return "Search"
	case ResultsContext:
		return "Results"
	case OverlayContext:
		return "Movie details"
	default:
		return ""
	}
}

// shortcutsFor returns the shortcuts tagged with ctx
func shortcutsFor(ctx HelpContext) []Shortcut {
	var out []Shortcut
	for _, sc := range allShortcuts {
		if slices.Contains(sc.Context, ctx) {
			out = append(out, sc)
		}
	}
	return out
}

func renderShortcutLine(sc Shortcut) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.OxocarbonPurple).
		Bold(true).
		Width(16)

	return "  " + keyStyle.Render(sc.Key) + styles.MetadataStyle.Render(sc.Description)
}
