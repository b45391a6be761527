// Package grid shows search results as a grid of movie cards.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/tui/common"
	"github.com/justchokingaround/marquee/internal/tui/styles"
	"github.com/justchokingaround/marquee/internal/tui/utils"
)

const (
	DefaultCardWidth = 30
	minCardWidth     = 16

	cardLines  = 3
	cardHeight = cardLines + 2 // border
	cardGap    = 1
)

// Model is the results grid
type Model struct {
	movies    []catalog.Movie
	cursor    int // position within the filtered list
	offset    int // first visible row
	width     int
	height    int
	cardWidth int

	filter *common.FuzzySearch
}

// New creates an empty grid
func New(cardWidth int) Model {
	m := Model{filter: common.NewFuzzySearch()}
	m.SetCardWidth(cardWidth)
	return m
}

// SetCardWidth sets the outer width of a card
func (m *Model) SetCardWidth(w int) {
	if w <= 0 {
		w = DefaultCardWidth
	}
	m.cardWidth = max(w, minCardWidth)
}

// SetSize sets the area available to the grid
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.filter.SetWidth(width)
	m.scrollToCursor()
}

// SetItems replaces the movies. Order is kept as given and the cursor and
// filter are reset.
func (m *Model) SetItems(movies []catalog.Movie) {
	m.movies = movies
	m.cursor = 0
	m.offset = 0
	m.filter.Deactivate()
}

// Items returns the movies in display order, after filtering
func (m Model) Items() []catalog.Movie {
	indices := m.visible()
	out := make([]catalog.Movie, len(indices))
	for i, idx := range indices {
		out[i] = m.movies[idx]
	}
	return out
}

// Current returns the movie under the cursor
func (m Model) Current() (catalog.Movie, bool) {
	indices := m.visible()
	if m.cursor < 0 || m.cursor >= len(indices) {
		return catalog.Movie{}, false
	}
	return m.movies[indices[m.cursor]], true
}

// Cursor returns the cursor position within the displayed movies
func (m Model) Cursor() int {
	return m.cursor
}

// IsFiltering reports whether keystrokes go to the filter input
func (m Model) IsFiltering() bool {
	return m.filter.IsEditing()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filter.IsEditing() {
		switch key.String() {
		case "esc", "enter":
			if m.filter.Query() == "" {
				m.filter.Deactivate()
			} else {
				m.filter.Lock()
			}
			return m, nil
		}
		cmd := m.filter.Update(msg)
		m.cursor = 0
		m.offset = 0
		return m, cmd
	}

	cols := m.columns()
	total := len(m.visible())

	switch key.String() {
	case "/":
		if m.filter.IsActive() {
			return m, m.filter.Unlock()
		}
		return m, m.filter.Activate()
	case "esc":
		if m.filter.IsActive() {
			m.filter.Deactivate()
			m.cursor = 0
			m.offset = 0
		}
		return m, nil
	case "left", "h":
		m.move(-1, total)
	case "right", "l":
		m.move(1, total)
	case "up", "k":
		m.move(-cols, total)
	case "down", "j":
		m.move(cols, total)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(total-1, 0)
	case "enter":
		if movie, ok := m.Current(); ok {
			return m, func() tea.Msg {
				return common.SelectMovieMsg{Movie: movie}
			}
		}
		return m, nil
	default:
		return m, nil
	}

	m.scrollToCursor()
	return m, nil
}

func (m *Model) move(delta, total int) {
	next := m.cursor + delta
	if next < 0 || next >= total {
		return
	}
	m.cursor = next
}

// visible returns indices into movies after filtering
func (m Model) visible() []int {
	targets := make([]string, len(m.movies))
	for i, mv := range m.movies {
		targets[i] = mv.Title + " " + mv.OriginalTitle + " " + strconv.Itoa(mv.Year())
	}
	return m.filter.Filter(targets)
}

func (m Model) columns() int {
	if m.width <= 0 {
		return 1
	}
	return max((m.width+cardGap)/(m.cardWidth+cardGap), 1)
}

func (m Model) rows() int {
	avail := m.height - 2 // count line and filter
	if m.height <= 0 {
		return 3
	}
	return max(avail/cardHeight, 1)
}

func (m *Model) scrollToCursor() {
	cols := m.columns()
	rows := m.rows()
	row := m.cursor / cols

	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
}

// View renders the filter line, a count line and the visible rows of cards
func (m Model) View() string {
	indices := m.visible()

	var b strings.Builder

	if f := m.filter.View(); f != "" {
		b.WriteString(f + "\n")
	}

	if m.filter.IsActive() && m.filter.Query() != "" {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d of %d movies", len(indices), len(m.movies))))
	} else {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d movies", len(m.movies))))
	}
	b.WriteString("\n")

	if len(indices) == 0 {
		return b.String()
	}

	cols := m.columns()
	rows := m.rows()
	start := m.offset * cols
	end := min((m.offset+rows)*cols, len(indices))

	var lines []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cards []string
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			if i > rowStart {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.renderCard(m.movies[indices[i]], i == m.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

func (m Model) renderCard(movie catalog.Movie, selected bool) string {
	inner := m.cardWidth - 4 // border and padding

	cardStyle := styles.CardStyle
	titleStyle := styles.CardTitleStyle
	if selected {
		cardStyle = styles.CardSelectedStyle
		titleStyle = styles.CardTitleSelectedStyle
	}

	title := titleStyle.Render(utils.Fit(movie.Title, inner))

	var meta []string
	if y := movie.Year(); y > 0 {
		meta = append(meta, strconv.Itoa(y))
	}
	if movie.VoteCount > 0 {
		meta = append(meta, fmt.Sprintf("★ %.1f", movie.VoteAverage))
	}
	metaLine := styles.MetadataStyle.Render(utils.Fit(strings.Join(meta, " • "), inner))

	genres := styles.MutedStyle.Render(utils.Fit(strings.Join(movie.Genres(), ", "), inner))

	return cardStyle.Width(m.cardWidth - 2).Render(title + "\n" + metaLine + "\n" + genres)
}
