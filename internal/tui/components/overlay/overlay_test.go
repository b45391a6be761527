package overlay

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/clipboard"
	"github.com/justchokingaround/marquee/internal/tui/common"
)

const imageBase = "https://image.tmdb.org/t/p/w500"

type fakeClipboard struct {
	copied []string
}

func (f *fakeClipboard) Copy(ctx context.Context, text string) error {
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakeClipboard) Write(ctx context.Context, text, label string) tea.Cmd {
	return func() tea.Msg {
		return clipboard.CopiedMsg{Label: label, Err: f.Copy(ctx, text)}
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func matrix() catalog.Movie {
	poster := "/matrix.jpg"
	return catalog.Movie{
		ID:               603,
		Title:            "The Matrix",
		OriginalTitle:    "The Matrix",
		Overview:         "Set in the 22nd century, The Matrix tells the story of a computer hacker.",
		ReleaseDate:      "1999-03-30",
		PosterPath:       &poster,
		VoteAverage:      8.2,
		VoteCount:        25123,
		Popularity:       1234.5,
		OriginalLanguage: "en",
		GenreIDs:         []int{28, 878},
	}
}

func openOverlay(clip clipboard.Service) Model {
	m := New(imageBase, clip)
	m.SetSize(100, 40)
	m.Open(matrix())
	return m
}

func TestOverlay_OpenClose(t *testing.T) {
	m := New(imageBase, nil)
	assert.False(t, m.IsOpen())
	assert.Empty(t, m.View())

	m.Open(matrix())
	require.True(t, m.IsOpen())
	assert.Equal(t, 603, m.Movie().ID)

	m.Close()
	assert.False(t, m.IsOpen())
	assert.Nil(t, m.Movie())
}

func TestOverlay_KeepsSnapshot(t *testing.T) {
	movie := matrix()
	m := New(imageBase, nil)
	m.Open(movie)

	movie.Title = "changed"
	assert.Equal(t, "The Matrix", m.Movie().Title)
}

func TestOverlay_EscRequestsClose(t *testing.T) {
	m := openOverlay(nil)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, common.CloseOverlayMsg{}, cmd())
	assert.True(t, m.IsOpen(), "owner closes the overlay")
}

func TestOverlay_OpenInBrowser(t *testing.T) {
	m := openOverlay(nil)
	var opened []string
	m.openURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	_, cmd := m.Update(runes("o"))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenedMsg{URL: "https://www.themoviedb.org/movie/603"}, cmd())

	_, cmd = m.Update(runes("p"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{
		"https://www.themoviedb.org/movie/603",
		imageBase + "/matrix.jpg",
	}, opened)
}

func TestOverlay_OpenError(t *testing.T) {
	m := openOverlay(nil)
	m.openURL = func(string) error { return errors.New("no browser") }

	_, cmd := m.Update(runes("o"))
	msg := cmd().(OpenedMsg)
	assert.EqualError(t, msg.Err, "no browser")
}

func TestOverlay_NoPoster(t *testing.T) {
	m := New(imageBase, nil)
	movie := matrix()
	movie.PosterPath = nil
	m.Open(movie)

	_, cmd := m.Update(runes("p"))
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "Poster:")
}

func TestOverlay_CopyLink(t *testing.T) {
	clip := &fakeClipboard{}
	m := openOverlay(clip)

	_, cmd := m.Update(runes("y"))
	require.NotNil(t, cmd)
	msg := cmd().(clipboard.CopiedMsg)
	assert.Equal(t, "Movie link", msg.Label)

	_, cmd = m.Update(runes("Y"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"https://www.themoviedb.org/movie/603", imageBase + "/matrix.jpg"}, clip.copied)
}

func TestOverlay_View(t *testing.T) {
	view := openOverlay(nil).View()

	for _, want := range []string{
		"The Matrix",
		"30 Mar 1999",
		"★ 8.2/10",
		"25,123 votes",
		"1,234.5",
		"Action",
		"Science Fiction",
		"computer hacker",
		"themoviedb.org/movie/603",
		"/matrix.jpg",
	} {
		assert.Contains(t, view, want)
	}
}

func TestFormatRelease(t *testing.T) {
	assert.Empty(t, formatRelease(""))
	assert.Equal(t, "TBA", formatRelease("TBA"))
	assert.Contains(t, formatRelease("1999-03-30"), "30 Mar 1999 (")
}
