// Package overlay is the movie detail dialog.
package overlay

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pkg/browser"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/clipboard"
	"github.com/justchokingaround/marquee/internal/tui/common"
	"github.com/justchokingaround/marquee/internal/tui/styles"
	"github.com/justchokingaround/marquee/internal/tui/utils"
)

// OpenedMsg reports the result of opening a link in the browser
type OpenedMsg struct {
	URL string
	Err error
}

// Model shows one movie. It keeps its own copy of the movie, so it stays
// valid after the result list changes.
type Model struct {
	movie        *catalog.Movie
	imageBaseURL string
	width        int
	height       int
	scroll       int

	clipboard clipboard.Service
	openURL   func(string) error
}

// New creates a closed overlay
func New(imageBaseURL string, clip clipboard.Service) Model {
	return Model{
		imageBaseURL: imageBaseURL,
		clipboard:    clip,
		openURL:      browser.OpenURL,
	}
}

// Open shows movie
func (m *Model) Open(movie catalog.Movie) {
	m.movie = &movie
	m.scroll = 0
}

// Close hides the overlay
func (m *Model) Close() {
	m.movie = nil
	m.scroll = 0
}

func (m Model) IsOpen() bool {
	return m.movie != nil
}

// Movie returns the movie on display, or nil
func (m Model) Movie() *catalog.Movie {
	return m.movie
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetImageBaseURL(url string) {
	m.imageBaseURL = url
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keys while open. Closing is requested with a
// common.CloseOverlayMsg; the owner decides when to call Close.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.movie == nil {
		return m, nil
	}

	movie := *m.movie
	switch key.String() {
	case "esc", "q", "enter", "backspace":
		return m, func() tea.Msg { return common.CloseOverlayMsg{} }
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		m.scroll++
	case "o":
		return m, m.open(movie.TMDBURL())
	case "p":
		if url := movie.PosterURL(m.imageBaseURL); url != "" {
			return m, m.open(url)
		}
	case "y":
		if m.clipboard != nil {
			return m, m.clipboard.Write(context.Background(), movie.TMDBURL(), "Movie link")
		}
	case "Y":
		if url := movie.PosterURL(m.imageBaseURL); url != "" && m.clipboard != nil {
			return m, m.clipboard.Write(context.Background(), url, "Poster link")
		}
	}
	return m, nil
}

func (m Model) open(url string) tea.Cmd {
	openURL := m.openURL
	return func() tea.Msg {
		return OpenedMsg{URL: url, Err: openURL(url)}
	}
}

func (m Model) dialogWidth() int {
	w := 80
	if m.width > 0 && m.width < w+4 {
		w = max(m.width-4, 30)
	}
	return w
}

// View renders the dialog centered in the window
func (m Model) View() string {
	if m.movie == nil {
		return ""
	}
	movie := m.movie

	width := m.dialogWidth()
	content := width - 6 // border and padding

	var b strings.Builder

	b.WriteString(styles.PopupTitleStyle.Width(content).Align(lipgloss.Center).Render(utils.Truncate(movie.Title, content-4)))
	b.WriteString("\n\n")

	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		b.WriteString(styles.SubtitleStyle.Render(utils.Truncate(movie.OriginalTitle, content)) + "\n")
	}

	var meta []string
	if released := formatRelease(movie.ReleaseDate); released != "" {
		meta = append(meta, released)
	}
	if movie.OriginalLanguage != "" {
		meta = append(meta, strings.ToUpper(movie.OriginalLanguage))
	}
	if movie.Adult {
		meta = append(meta, "18+")
	}
	if len(meta) > 0 {
		b.WriteString(styles.MetadataStyle.Render(strings.Join(meta, " • ")) + "\n")
	}

	if movie.VoteCount > 0 {
		score := lipgloss.NewStyle().Foreground(styles.RatingColor(movie.VoteAverage)).Bold(true).
			Render(fmt.Sprintf("★ %.1f/10", movie.VoteAverage))
		votes := styles.MutedStyle.Render(fmt.Sprintf(" (%s votes)", humanize.Comma(int64(movie.VoteCount))))
		b.WriteString(score + votes)
	} else {
		b.WriteString(styles.MutedStyle.Render("No ratings yet"))
	}
	if movie.Popularity > 0 {
		b.WriteString(styles.MutedStyle.Render(" • popularity " + humanize.FormatFloat("#,###.#", movie.Popularity)))
	}
	b.WriteString("\n")

	if genres := RenderGenres(movie.Genres(), 4); genres != "" {
		b.WriteString("\n" + genres + "\n")
	}

	b.WriteString("\n")
	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	lines := utils.WrapText(overview, content)
	maxLines := m.overviewLines()
	start := min(m.scroll, max(len(lines)-maxLines, 0))
	end := min(start+maxLines, len(lines))
	b.WriteString(styles.SynopsisStyle.Render(strings.Join(lines[start:end], "\n")))
	if end < len(lines) {
		b.WriteString("\n" + styles.MutedStyle.Render(fmt.Sprintf("↓ %d more lines", len(lines)-end)))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.MutedStyle.Render("TMDB:   ") + styles.URLStyle.Render(utils.Truncate(movie.TMDBURL(), content-8)) + "\n")
	if poster := movie.PosterURL(m.imageBaseURL); poster != "" {
		b.WriteString(styles.MutedStyle.Render("Poster: ") + styles.URLStyle.Render(utils.Truncate(poster, content-8)) + "\n")
	}

	b.WriteString(styles.HelpStyle.Render("o open • p poster • y copy link • Y copy poster • ↑/↓ scroll • esc close"))

	box := styles.PopupStyle.Width(width - 2).Render(b.String())

	if m.width == 0 || m.height == 0 || lipgloss.Height(box) >= m.height {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) overviewLines() int {
	if m.height <= 0 {
		return 10
	}
	// title, metadata, genres, links and help take about 18 lines
	return min(max(m.height-18, 3), 20)
}

// formatRelease renders an ISO date as "23 Jun 1989 (35 years ago)"
func formatRelease(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", t.Format("2 Jan 2006"), humanize.Time(t))
}
