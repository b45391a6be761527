package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/config"
	"github.com/justchokingaround/marquee/internal/database"
	"github.com/justchokingaround/marquee/internal/history"
	"github.com/justchokingaround/marquee/internal/search"
	"github.com/justchokingaround/marquee/internal/tui/common"
)

type fakeSearcher struct {
	mu    sync.Mutex
	pages map[search.Key]*catalog.ResultPage
	err   error
	calls []search.Key
}

func (f *fakeSearcher) Search(ctx context.Context, query string, page int) (*catalog.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := search.Key{Query: query, Page: page}
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pages[key]; ok {
		return p, nil
	}
	return &catalog.ResultPage{Page: page, Results: []catalog.Movie{}}, nil
}

func page(n, total int, titles ...string) *catalog.ResultPage {
	movies := make([]catalog.Movie, len(titles))
	for i, title := range titles {
		movies[i] = catalog.Movie{ID: n*100 + i, Title: title}
	}
	return &catalog.ResultPage{Page: n, Results: movies, TotalPages: total}
}

func newTestApp(t *testing.T, searcher catalog.Searcher, hist *history.Service) *App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.UI.ToastDuration = 5 * time.Millisecond
	cfg.History.Enabled = hist != nil

	a := NewApp(cfg, searcher, hist, nil, nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a
}

// collect runs cmd and any batched commands and returns every message
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func resultOf(t *testing.T, cmd tea.Cmd) common.SearchResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if r, ok := msg.(common.SearchResultMsg); ok {
			return r
		}
	}
	t.Fatal("no search result produced")
	return common.SearchResultMsg{}
}

func update(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func countToasts(a *App, text string) int {
	n := 0
	for _, t := range a.status.Toasts() {
		if t == text {
			n++
		}
	}
	return n
}

func TestApp_BatmanScenario(t *testing.T) {
	fake := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
		{Query: "batman", Page: 1}: page(1, 5, "Batman"),
		{Query: "batman", Page: 3}: {Page: 3, Results: []catalog.Movie{}, TotalPages: 5},
	}}
	a := newTestApp(t, fake, nil)

	res := resultOf(t, update(a, common.PerformSearchMsg{Query: "batman"}))
	assert.Nil(t, update(a, res), "no notification for a non-empty page")

	assert.Len(t, a.grid.Items(), 1)
	assert.True(t, a.orch.ShowPagination())
	assert.Equal(t, 5, a.pager.PageCount())
	assert.Equal(t, 0, a.pager.Selected())
	assert.Contains(t, a.View(), "Batman")

	res = resultOf(t, update(a, common.PageChangedMsg{Selected: 2}))
	toast := update(a, res)
	require.NotNil(t, toast)

	assert.Empty(t, a.grid.Items())
	assert.True(t, a.orch.ShowPagination())
	assert.Equal(t, 5, a.pager.PageCount())
	assert.Equal(t, 2, a.pager.Selected())
	assert.Equal(t, 1, countToasts(a, noResultsText))

	// re-rendering and selection changes do not notify again
	a.View()
	update(a, common.SelectMovieMsg{Movie: catalog.Movie{ID: 1, Title: "Batman"}})
	update(a, common.CloseOverlayMsg{})
	a.View()
	assert.Equal(t, 1, countToasts(a, noResultsText))

	assert.Equal(t, []search.Key{{Query: "batman", Page: 1}, {Query: "batman", Page: 3}}, fake.calls)
}

func TestApp_EmptyResultsScenario(t *testing.T) {
	fake := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
		{Query: "zzzznotreal", Page: 1}: {Page: 1, Results: []catalog.Movie{}, TotalPages: 0},
	}}
	a := newTestApp(t, fake, nil)

	res := resultOf(t, update(a, common.PerformSearchMsg{Query: "zzzznotreal"}))
	toast := update(a, res)

	require.NotNil(t, toast)
	assert.False(t, a.orch.ShowPagination())
	assert.Empty(t, a.pager.View())
	assert.Equal(t, 1, countToasts(a, noResultsText))
	assert.Contains(t, a.View(), noResultsText)

	// the toast dismisses itself
	for _, msg := range collect(toast) {
		update(a, msg)
	}
	assert.Empty(t, a.status.Toasts())

	// a new empty search notifies again
	res = resultOf(t, update(a, common.PerformSearchMsg{Query: "qqqqnotreal"}))
	update(a, res)
	assert.Equal(t, 1, countToasts(a, noResultsText))
}

func TestApp_NetworkFailureScenario(t *testing.T) {
	fake := &fakeSearcher{err: fmt.Errorf("%w: connection refused", catalog.ErrNetwork)}
	a := newTestApp(t, fake, nil)

	res := resultOf(t, update(a, common.PerformSearchMsg{Query: "batman"}))
	assert.Nil(t, update(a, res))

	assert.True(t, a.orch.Failed())
	assert.ErrorIs(t, a.orch.Err(), catalog.ErrNetwork)
	assert.Equal(t, "batman", a.orch.Query())
	assert.Equal(t, 1, a.orch.Page())
	assert.Empty(t, a.grid.Items())
	assert.Empty(t, a.status.Toasts())

	view := a.View()
	assert.Contains(t, view, "There was an error")
	assert.NotContains(t, view, "Loading movies")
}

func TestApp_RetryAfterFailure(t *testing.T) {
	fake := &fakeSearcher{err: fmt.Errorf("%w: timeout", catalog.ErrNetwork)}
	a := newTestApp(t, fake, nil)

	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "dune"})))
	require.True(t, a.orch.Failed())

	fake.err = nil
	fake.pages = map[search.Key]*catalog.ResultPage{{Query: "dune", Page: 1}: page(1, 1, "Dune")}

	update(a, resultOf(t, update(a, key("r"))))

	assert.Equal(t, search.StatusSuccess, a.orch.Status())
	assert.Len(t, a.grid.Items(), 1)
	assert.Len(t, fake.calls, 2)
}

func TestApp_StaleResultsAreDropped(t *testing.T) {
	fake := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
		{Query: "batman", Page: 1}:   page(1, 1, "Batman"),
		{Query: "superman", Page: 1}: page(1, 1, "Superman"),
	}}

	t.Run("old response arrives last", func(t *testing.T) {
		a := newTestApp(t, fake, nil)

		oldCmd := update(a, common.PerformSearchMsg{Query: "batman"})
		newCmd := update(a, common.PerformSearchMsg{Query: "superman"})

		update(a, resultOf(t, newCmd))
		update(a, resultOf(t, oldCmd))

		require.Len(t, a.grid.Items(), 1)
		assert.Equal(t, "Superman", a.grid.Items()[0].Title)
	})

	t.Run("old response arrives first", func(t *testing.T) {
		a := newTestApp(t, fake, nil)

		oldCmd := update(a, common.PerformSearchMsg{Query: "batman"})
		newCmd := update(a, common.PerformSearchMsg{Query: "superman"})

		update(a, resultOf(t, oldCmd))
		assert.True(t, a.orch.Loading())
		assert.Empty(t, a.grid.Items())
		assert.NotContains(t, a.View(), "Batman")

		update(a, resultOf(t, newCmd))
		assert.Equal(t, "Superman", a.grid.Items()[0].Title)
	})

	t.Run("page change supersedes first page", func(t *testing.T) {
		pages := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
			{Query: "batman", Page: 1}: page(1, 5, "Batman"),
			{Query: "batman", Page: 4}: page(4, 5, "Batman Forever"),
		}}
		a := newTestApp(t, pages, nil)

		first := update(a, common.PerformSearchMsg{Query: "batman"})
		second := update(a, common.PageChangedMsg{Selected: 3})

		update(a, resultOf(t, second))
		update(a, resultOf(t, first))

		assert.Equal(t, "Batman Forever", a.grid.Items()[0].Title)
		assert.Equal(t, 3, a.pager.Selected())
		assert.Equal(t, []search.Key{{Query: "batman", Page: 1}, {Query: "batman", Page: 4}}, pages.calls)
	})
}

func TestApp_EmptyQueryClears(t *testing.T) {
	fake := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
		{Query: "batman", Page: 1}: page(1, 5, "Batman"),
	}}
	a := newTestApp(t, fake, nil)
	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "batman"})))
	require.True(t, a.orch.ShowPagination())

	cmd := update(a, common.PerformSearchMsg{Query: "   "})

	assert.Nil(t, cmd, "no fetch issued")
	assert.Equal(t, search.StatusIdle, a.orch.Status())
	assert.Empty(t, a.grid.Items())
	assert.Equal(t, 0, a.pager.PageCount())
	assert.NotContains(t, a.View(), "Batman")
	assert.Len(t, fake.calls, 1)
}

func TestApp_PageChangeWhileIdle(t *testing.T) {
	fake := &fakeSearcher{}
	a := newTestApp(t, fake, nil)

	assert.Nil(t, update(a, common.PageChangedMsg{Selected: 2}))
	assert.Equal(t, search.StatusIdle, a.orch.Status())
	assert.Empty(t, fake.calls)
}

func TestApp_PaginationKeys(t *testing.T) {
	fake := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
		{Query: "batman", Page: 1}: page(1, 5, "Batman"),
	}}
	a := newTestApp(t, fake, nil)
	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "batman"})))
	require.Equal(t, focusResults, a.focus)

	msgs := collect(update(a, key("]")))

	assert.Equal(t, []tea.Msg{common.PageChangedMsg{Selected: 1}}, msgs)
}

func TestApp_Overlay(t *testing.T) {
	fake := &fakeSearcher{pages: map[search.Key]*catalog.ResultPage{
		{Query: "matrix", Page: 1}: page(1, 1, "The Matrix", "The Matrix Reloaded"),
	}}
	a := newTestApp(t, fake, nil)
	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "matrix"})))

	msgs := collect(update(a, key("enter")))
	require.Len(t, msgs, 1)
	update(a, msgs[0])

	require.True(t, a.overlay.IsOpen())
	require.NotNil(t, a.orch.Selected())
	assert.Equal(t, "The Matrix", a.orch.Selected().Title)
	assert.Contains(t, a.View(), "The Matrix")

	// the overlay keeps its movie while a new search replaces the grid
	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "alien"})))
	assert.Equal(t, "The Matrix", a.overlay.Movie().Title)

	msgs = collect(update(a, key("esc")))
	require.Equal(t, []tea.Msg{common.CloseOverlayMsg{}}, msgs)
	update(a, msgs[0])

	assert.False(t, a.overlay.IsOpen())
	assert.Nil(t, a.orch.Selected())
}

func TestApp_FocusSwitching(t *testing.T) {
	a := newTestApp(t, &fakeSearcher{}, nil)
	require.Equal(t, focusSearch, a.focus)

	// esc does nothing while idle
	update(a, key("esc"))
	assert.Equal(t, focusSearch, a.focus)

	update(a, key("tab"))
	assert.Equal(t, focusResults, a.focus)

	update(a, key("s"))
	assert.Equal(t, focusSearch, a.focus)

	// typing "q" in the search box does not quit
	assert.Nil(t, collectQuit(update(a, key("q"))))
	assert.Equal(t, "q", a.searchBar.GetValue())
}

func collectQuit(cmd tea.Cmd) tea.Msg {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return msg
		}
	}
	return nil
}

func TestApp_HistoryRecorded(t *testing.T) {
	db, err := database.Open(":memory:", 1, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	hist := history.NewService(db, 10)

	a := newTestApp(t, &fakeSearcher{}, hist)

	var recent *common.RecentSearchesMsg
	for _, msg := range collect(update(a, common.PerformSearchMsg{Query: "  heat "})) {
		if r, ok := msg.(common.RecentSearchesMsg); ok {
			recent = &r
		}
	}

	require.NotNil(t, recent)
	require.NoError(t, recent.Err)
	assert.Equal(t, []string{"heat"}, recent.Queries)

	update(a, *recent)
	update(a, key("s"))
	assert.Contains(t, a.View(), "recent: heat")
}

func TestApp_ConfigReload(t *testing.T) {
	oldSearcher := &fakeSearcher{}
	a := newTestApp(t, oldSearcher, nil)

	newSearcher := &fakeSearcher{}
	cfg := config.DefaultConfig()
	cfg.UI.ToastDuration = 5 * time.Millisecond
	cfg.History.Enabled = false

	update(a, ConfigReloadedMsg{Config: cfg, Searcher: newSearcher})
	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "heat"})))

	assert.Empty(t, oldSearcher.calls)
	assert.Len(t, newSearcher.calls, 1)
	assert.Contains(t, strings.Join(a.status.Toasts(), "\n"), "Configuration reloaded")
}

func TestApp_MissingSearcher(t *testing.T) {
	a := newTestApp(t, nil, nil)

	update(a, resultOf(t, update(a, common.PerformSearchMsg{Query: "heat"})))

	assert.ErrorIs(t, a.orch.Err(), catalog.ErrTokenMissing)
	assert.Equal(t, "token_missing", errorKind(a.orch.Err()))
}

func TestApp_Notify(t *testing.T) {
	a := newTestApp(t, &fakeSearcher{}, nil)

	a.Notify(common.ToastMsg{Text: "hello"})

	msg := a.listenForMessages()()
	require.Equal(t, externalMsg{msg: common.ToastMsg{Text: "hello"}}, msg)

	cmd := update(a, msg)
	assert.Contains(t, a.status.Toasts(), "hello")

	// the listener is armed again for the next message
	a.Notify(common.ToastMsg{Text: "again"})
	assert.Contains(t, collect(cmd), externalMsg{msg: common.ToastMsg{Text: "again"}})
}

func TestApp_NotifyConfigReload(t *testing.T) {
	a := newTestApp(t, &fakeSearcher{}, nil)
	cfg := config.DefaultConfig()
	cfg.UI.ToastDuration = 5 * time.Millisecond

	a.Notify(ConfigReloadedMsg{Config: cfg})
	cmd := update(a, a.listenForMessages()())

	assert.Same(t, cfg, a.cfg)
	a.Notify(common.ToastMsg{Text: "next"})
	assert.Contains(t, collect(cmd), externalMsg{msg: common.ToastMsg{Text: "next"}})
}
