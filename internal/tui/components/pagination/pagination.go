// Package pagination renders a windowed page picker. Pages are zero-based
// on this side of the boundary.
package pagination

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/marquee/internal/tui/common"
	"github.com/justchokingaround/marquee/internal/tui/styles"
)

const (
	DefaultPageRange = 5
	DefaultMargin    = 1

	prevLabel  = "←"
	nextLabel  = "→"
	breakLabel = "…"
)

// Item is one slot of the control: a page or a break
type Item struct {
	Page  int
	Break bool
}

// Model is the pagination control
type Model struct {
	pageCount int
	selected  int
	pageRange int
	margin    int
}

// New creates a control showing pageRange pages around the selection and
// margin pages at each end
func New(pageRange, margin int) Model {
	if pageRange < 1 {
		pageRange = DefaultPageRange
	}
	if margin < 0 {
		margin = DefaultMargin
	}
	return Model{pageRange: pageRange, margin: margin}
}

// SetPages updates the page count and forces the selected page
func (m *Model) SetPages(pageCount, selected int) {
	m.pageCount = max(pageCount, 0)
	m.selected = min(max(selected, 0), max(m.pageCount-1, 0))
}

func (m Model) PageCount() int { return m.pageCount }

func (m Model) Selected() int { return m.selected }

func (m Model) Init() tea.Cmd {
	return nil
}

// Update moves the selection on key presses and reports it with a
// common.PageChangedMsg. The selection itself is only changed by SetPages,
// so the owner stays the source of truth.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.pageCount < 2 {
		return m, nil
	}

	target := m.selected
	switch key.String() {
	case "[", "pgup", "ctrl+left":
		target--
	case "]", "pgdown", "ctrl+right":
		target++
	case "{", "ctrl+home":
		target = 0
	case "}", "ctrl+end":
		target = m.pageCount - 1
	default:
		return m, nil
	}

	if target < 0 || target >= m.pageCount || target == m.selected {
		return m, nil
	}

	return m, func() tea.Msg {
		return common.PageChangedMsg{Selected: target}
	}
}

// Items lays out the visible pages the way web paginators do: the first and
// last margin pages, a window of pageRange pages around the selection, and a
// break wherever pages are skipped.
func (m Model) Items() []Item {
	var items []Item

	if m.pageCount <= m.pageRange {
		for i := 0; i < m.pageCount; i++ {
			items = append(items, Item{Page: i})
		}
		return items
	}

	half := float64(m.pageRange) / 2
	left, right := half, float64(m.pageRange)-half
	sel := float64(m.selected)

	switch {
	case sel > float64(m.pageCount)-half:
		right = float64(m.pageCount - m.selected)
		left = float64(m.pageRange) - right
	case sel < half:
		left = sel
		right = float64(m.pageRange) - left
	}
	if m.selected == 0 && m.pageRange > 1 {
		right--
	}

	for i := 0; i < m.pageCount; i++ {
		page := i + 1
		idx := float64(i)

		switch {
		case page <= m.margin,
			page > m.pageCount-m.margin,
			idx >= sel-left && idx <= sel+right:
			items = append(items, Item{Page: i})
		case len(items) > 0 && !items[len(items)-1].Break:
			items = append(items, Item{Break: true})
		}
	}
	return items
}

// View renders the control. Page labels are 1-based.
func (m Model) View() string {
	if m.pageCount < 2 {
		return ""
	}

	parts := make([]string, 0, len(m.Items())+2)

	if m.selected > 0 {
		parts = append(parts, styles.PageStyle.Render(prevLabel))
	} else {
		parts = append(parts, styles.PageDisabledStyle.Render(prevLabel))
	}

	for _, it := range m.Items() {
		switch {
		case it.Break:
			parts = append(parts, styles.PageStyle.Render(breakLabel))
		case it.Page == m.selected:
			parts = append(parts, styles.PageActiveStyle.Render(strconv.Itoa(it.Page+1)))
		default:
			parts = append(parts, styles.PageStyle.Render(strconv.Itoa(it.Page+1)))
		}
	}

	if m.selected < m.pageCount-1 {
		parts = append(parts, styles.PageStyle.Render(nextLabel))
	} else {
		parts = append(parts, styles.PageDisabledStyle.Render(nextLabel))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Labels renders the control as plain text, e.g. "1 … 4 5 [6] 7 8 … 20"
func (m Model) Labels() string {
	var b strings.Builder
	for i, it := range m.Items() {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case it.Break:
			b.WriteString(breakLabel)
		case it.Page == m.selected:
			b.WriteString("[" + strconv.Itoa(it.Page+1) + "]")
		default:
			b.WriteString(strconv.Itoa(it.Page + 1))
		}
	}
	return b.String()
}
