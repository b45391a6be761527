// Package status renders the fetch placeholders and transient toasts.
package status

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/marquee/internal/tui/styles"
)

const (
	loadingText = "Loading movies, please wait..."
	errorText   = "There was an error, please try again..."
)

// DismissMsg removes the toast with the given id
type DismissMsg struct {
	ID int
}

type toast struct {
	id    int
	text  string
	error bool
}

// Model holds the loader spinner and the visible toasts
type Model struct {
	spinner  spinner.Model
	toasts   []toast
	nextID   int
	duration time.Duration
}

// New creates a status model whose toasts stay up for duration
func New(duration time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	if duration <= 0 {
		duration = 3 * time.Second
	}

	return Model{spinner: s, duration: duration}
}

// SetDuration changes how long future toasts stay up
func (m *Model) SetDuration(d time.Duration) {
	if d > 0 {
		m.duration = d
	}
}

// Tick starts the spinner animation
func (m Model) Tick() tea.Cmd {
	return m.spinner.Tick
}

// Toast shows text and schedules its removal. Toasts never take focus.
func (m *Model) Toast(text string, isError bool) tea.Cmd {
	m.nextID++
	id := m.nextID
	m.toasts = append(m.toasts, toast{id: id, text: text, error: isError})

	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}

// Toasts returns the texts of the visible toasts, oldest first
func (m Model) Toasts() []string {
	out := make([]string, len(m.toasts))
	for i, t := range m.toasts {
		out[i] = t.text
	}
	return out
}

// Update advances the spinner and removes dismissed toasts
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DismissMsg:
		for i, t := range m.toasts {
			if t.id == msg.ID {
				m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
				break
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// LoadingView renders the loader placeholder
func (m Model) LoadingView() string {
	return styles.LoaderStyle.Render(m.spinner.View() + " " + loadingText)
}

// ErrorView renders the error placeholder
func (m Model) ErrorView() string {
	return styles.ErrorStyle.Render(errorText)
}

// ToastsView renders the visible toasts stacked vertically
func (m Model) ToastsView() string {
	if len(m.toasts) == 0 {
		return ""
	}

	rendered := make([]string, len(m.toasts))
	for i, t := range m.toasts {
		if t.error {
			rendered[i] = styles.ToastErrorStyle.Render("✗ " + t.text)
		} else {
			rendered[i] = styles.ToastStyle.Render("✓ " + t.text)
		}
	}
	return strings.Join(rendered, "\n")
}
