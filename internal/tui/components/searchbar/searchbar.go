package searchbar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/marquee/internal/tui/common"
	"github.com/justchokingaround/marquee/internal/tui/styles"
	"github.com/justchokingaround/marquee/internal/tui/utils"
)

// Model is the query input. Up and down cycle through recent searches.
type Model struct {
	textInput textinput.Model
	width     int

	recent    []string
	recentPos int // -1 while editing a fresh query
	draft     string
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.PlaceholderStyle = styles.MutedStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	return Model{textInput: ti, recentPos: -1}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > 20 {
			m.textInput.Width = m.width - 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			query := m.textInput.Value()
			m.recentPos = -1
			return m, func() tea.Msg {
				return common.PerformSearchMsg{Query: query}
			}
		case "up", "ctrl+p":
			m.cycleRecent(1)
			return m, nil
		case "down", "ctrl+n":
			m.cycleRecent(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// cycleRecent walks the recent list; step 1 goes back in time
func (m *Model) cycleRecent(step int) {
	if len(m.recent) == 0 {
		return
	}
	if m.recentPos == -1 {
		m.draft = m.textInput.Value()
	}

	pos := m.recentPos + step
	switch {
	case pos < -1:
		return
	case pos == -1:
		m.recentPos = -1
		m.textInput.SetValue(m.draft)
	case pos >= len(m.recent):
		return
	default:
		m.recentPos = pos
		m.textInput.SetValue(m.recent[pos])
	}
	m.textInput.CursorEnd()
}

func (m Model) View() string {
	box := styles.InputStyle
	if m.textInput.Focused() {
		box = styles.InputFocusedStyle
	}

	out := box.Render(m.textInput.View())

	if len(m.recent) > 0 && m.textInput.Focused() {
		hint := "recent: "
		for i, q := range m.recent {
			if i == 3 {
				break
			}
			if i > 0 {
				hint += " · "
			}
			hint += utils.Truncate(q, 20)
		}
		out += "\n" + styles.MutedStyle.MarginLeft(3).Render(hint+"  (↑/↓)")
	}
	return out
}

// SetRecent replaces the recent searches, newest first
func (m *Model) SetRecent(queries []string) {
	m.recent = queries
	m.recentPos = -1
}

func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

func (m *Model) Blur() {
	m.textInput.Blur()
}

func (m Model) Focused() bool {
	return m.textInput.Focused()
}

// SetValue sets the value of the search input
func (m *Model) SetValue(value string) {
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
}

// GetValue returns the value of the search input
func (m Model) GetValue() string {
	return m.textInput.Value()
}
