package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/clipboard"
	"github.com/justchokingaround/marquee/internal/history"
	"github.com/justchokingaround/marquee/internal/tui/common"
	"github.com/justchokingaround/marquee/internal/tui/components/help"
	"github.com/justchokingaround/marquee/internal/tui/components/overlay"
)

const noResultsText = "No movies found"

func (a *App) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height

	var cmd tea.Cmd
	a.searchBar, cmd = a.searchBar.Update(msg)
	a.help, _ = a.help.Update(msg)
	a.grid.SetSize(msg.Width-2, msg.Height-chromeHeight)
	a.overlay.SetSize(msg.Width, msg.Height)

	return a, cmd
}

func (a *App) handlePerformSearch(msg common.PerformSearchMsg) (tea.Model, tea.Cmd) {
	req := a.orch.SubmitQuery(msg.Query)
	a.syncResults()

	if req == nil {
		a.logger.Debug("search cleared")
		return a, nil
	}

	a.logger.Info("search submitted", "query", req.Key.Query)

	return a, tea.Batch(
		a.fetch(req),
		a.status.Tick(),
		a.recordSearch(req.Key.Query),
		a.setFocus(focusResults),
	)
}

func (a *App) handlePageChanged(msg common.PageChangedMsg) (tea.Model, tea.Cmd) {
	req := a.orch.ChangePage(msg.Selected + 1)
	if req == nil {
		return a, nil
	}
	a.syncResults()

	a.logger.Debug("page changed", "query", req.Key.Query, "page", req.Key.Page)
	return a, tea.Batch(a.fetch(req), a.status.Tick())
}

func (a *App) handleSearchResult(msg common.SearchResultMsg) (tea.Model, tea.Cmd) {
	resp := msg.Response
	outcome := a.orch.Resolve(resp)

	if outcome.Stale {
		a.logger.Debug("dropping stale result",
			"query", resp.Key.Query,
			"page", resp.Key.Page,
			"generation", resp.Generation,
			"current", a.orch.Generation(),
		)
		return a, nil
	}

	a.syncResults()

	if err := a.orch.Err(); err != nil {
		a.logger.Error("search failed",
			"query", resp.Key.Query,
			"page", resp.Key.Page,
			"kind", errorKind(err),
			"error", err,
		)
		return a, nil
	}

	a.logger.Debug("search completed",
		"query", resp.Key.Query,
		"page", resp.Key.Page,
		"results", len(a.orch.Items()),
		"total_pages", a.orch.PageCount(),
	)

	if outcome.NotifyEmpty {
		return a, a.status.Toast(noResultsText, true)
	}
	return a, nil
}

func (a *App) handleSelectMovie(msg common.SelectMovieMsg) (tea.Model, tea.Cmd) {
	a.orch.Select(msg.Movie)
	a.overlay.Open(msg.Movie)
	a.help.SetContext(help.OverlayContext)
	return a, nil
}

func (a *App) handleCloseOverlay() (tea.Model, tea.Cmd) {
	a.orch.ClearSelection()
	a.overlay.Close()
	return a, a.setFocus(a.focus)
}

func (a *App) handleRecentSearches(msg common.RecentSearchesMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.logger.Warn("failed to load recent searches", "error", msg.Err)
		return a, nil
	}
	a.searchBar.SetRecent(msg.Queries)
	return a, nil
}

func (a *App) handleCopied(msg clipboard.CopiedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.logger.Warn("copy failed", "error", msg.Err)
		return a, a.status.Toast("Could not copy to clipboard", true)
	}
	return a, a.status.Toast(msg.Label+" copied to clipboard", false)
}

func (a *App) handleOpened(msg overlay.OpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.logger.Warn("failed to open browser", "url", msg.URL, "error", msg.Err)
		return a, a.status.Toast("Could not open browser", true)
	}
	return a, nil
}

func (a *App) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config != nil {
		a.cfg = msg.Config
		a.grid.SetCardWidth(msg.Config.UI.CardWidth)
		a.status.SetDuration(msg.Config.UI.ToastDuration)
		a.overlay.SetImageBaseURL(msg.Config.TMDB.ImageBaseURL)
	}
	if msg.Searcher != nil {
		a.searcher = msg.Searcher
	}
	a.logger.Info("configuration reloaded")

	return a, a.status.Toast("Configuration reloaded", false)
}

// recordSearch saves query to the recent list and reloads it
func (a *App) recordSearch(query string) tea.Cmd {
	if a.history == nil || !a.cfg.History.Enabled {
		return nil
	}
	hist := a.history
	limit := a.cfg.History.Limit

	return func() tea.Msg {
		if err := hist.Record(query); err != nil {
			return common.RecentSearchesMsg{Err: err}
		}
		return recentSearches(hist, limit)
	}
}

// loadRecent loads the recent list at startup
func (a *App) loadRecent() tea.Cmd {
	if a.history == nil || !a.cfg.History.Enabled {
		return nil
	}
	hist := a.history
	limit := a.cfg.History.Limit

	return func() tea.Msg {
		return recentSearches(hist, limit)
	}
}

func recentSearches(hist *history.Service, limit int) common.RecentSearchesMsg {
	entries, err := hist.Recent(limit)
	if err != nil {
		return common.RecentSearchesMsg{Err: err}
	}

	queries := make([]string, len(entries))
	for i, e := range entries {
		queries[i] = e.Query
	}
	return common.RecentSearchesMsg{Queries: queries}
}

// errorKind names the failure class for logs
func errorKind(err error) string {
	switch {
	case errors.Is(err, catalog.ErrTokenMissing):
		return "token_missing"
	case errors.Is(err, catalog.ErrNetwork):
		return "network"
	case errors.Is(err, catalog.ErrUpstream):
		return "upstream"
	case errors.Is(err, catalog.ErrMalformedResponse):
		return "malformed"
	default:
		return "unknown"
	}
}
