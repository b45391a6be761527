package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/clipboard"
	"github.com/justchokingaround/marquee/internal/config"
	"github.com/justchokingaround/marquee/internal/history"
	"github.com/justchokingaround/marquee/internal/search"
	"github.com/justchokingaround/marquee/internal/tui/common"
	"github.com/justchokingaround/marquee/internal/tui/components/grid"
	"github.com/justchokingaround/marquee/internal/tui/components/help"
	"github.com/justchokingaround/marquee/internal/tui/components/overlay"
	"github.com/justchokingaround/marquee/internal/tui/components/pagination"
	"github.com/justchokingaround/marquee/internal/tui/components/searchbar"
	"github.com/justchokingaround/marquee/internal/tui/components/status"
	"github.com/justchokingaround/marquee/internal/tui/styles"
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// header, search box, hint, pagination and footer
const chromeHeight = 9

// ConfigReloadedMsg swaps in a reloaded configuration and catalog client.
// The next fetch uses the new client; a fetch already in flight finishes
// with the old one.
type ConfigReloadedMsg struct {
	Config   *config.Config
	Searcher catalog.Searcher
}

// App is the root bubbletea model
type App struct {
	cfg       *config.Config
	searcher  catalog.Searcher
	history   *history.Service
	clipboard clipboard.Service
	logger    *slog.Logger

	orch *search.Orchestrator

	searchBar searchbar.Model
	grid      grid.Model
	pager     pagination.Model
	status    status.Model
	overlay   overlay.Model
	help      help.Model

	focus  focusArea
	width  int
	height int

	// msgChan carries messages from outside the program, e.g. config reloads
	msgChan chan tea.Msg
}

// NewApp builds the root model. hist may be nil to disable recent searches.
func NewApp(cfg *config.Config, searcher catalog.Searcher, hist *history.Service, clip clipboard.Service, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &App{
		cfg:       cfg,
		searcher:  searcher,
		history:   hist,
		clipboard: clip,
		logger:    logger.With("component", "tui"),
		orch:      search.New(),
		searchBar: searchbar.New(),
		grid:      grid.New(cfg.UI.CardWidth),
		pager:     pagination.New(pagination.DefaultPageRange, pagination.DefaultMargin),
		status:    status.New(cfg.UI.ToastDuration),
		overlay:   overlay.New(cfg.TMDB.ImageBaseURL, clip),
		help:      help.New(),
		focus:     focusSearch,
		msgChan:   make(chan tea.Msg, 16),
	}
}

// Notify hands a message to the running program. It never blocks; the
// message is dropped when the queue is full.
func (a *App) Notify(msg tea.Msg) {
	select {
	case a.msgChan <- msg:
	default:
		a.logger.Warn("dropping external message, queue full")
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.searchBar.Init(),
		a.loadRecent(),
		a.listenForMessages(),
	)
}

// externalMsg carries a message delivered through Notify
type externalMsg struct {
	msg tea.Msg
}

// listenForMessages waits for the next message from Notify
func (a *App) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		return externalMsg{msg: <-a.msgChan}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case externalMsg:
		// keep listening whatever the message was
		model, cmd := a.Update(msg.msg)
		return model, tea.Batch(cmd, a.listenForMessages())

	case tea.WindowSizeMsg:
		return a.handleWindowSize(msg)
	case tea.KeyMsg:
		return a.handleKey(msg)

	case common.PerformSearchMsg:
		return a.handlePerformSearch(msg)
	case common.SearchResultMsg:
		return a.handleSearchResult(msg)
	case common.PageChangedMsg:
		return a.handlePageChanged(msg)
	case common.SelectMovieMsg:
		return a.handleSelectMovie(msg)
	case common.CloseOverlayMsg:
		return a.handleCloseOverlay()
	case common.FocusSearchMsg:
		return a, a.setFocus(focusSearch)
	case common.RecentSearchesMsg:
		return a.handleRecentSearches(msg)
	case common.ToastMsg:
		return a, a.status.Toast(msg.Text, msg.Error)

	case clipboard.CopiedMsg:
		return a.handleCopied(msg)
	case overlay.OpenedMsg:
		return a.handleOpened(msg)
	case ConfigReloadedMsg:
		return a.handleConfigReloaded(msg)

	case status.DismissMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd
	}

	// spinner ticks and cursor blinks
	var cmds []tea.Cmd
	if a.orch.Loading() {
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.focus == focusSearch {
		var cmd tea.Cmd
		a.searchBar, cmd = a.searchBar.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	if f == focusSearch {
		a.help.SetContext(help.SearchContext)
		return a.searchBar.Focus()
	}
	a.searchBar.Blur()
	a.help.SetContext(help.ResultsContext)
	return nil
}

// syncResults pushes orchestrator state into the grid and pagination
func (a *App) syncResults() {
	a.grid.SetItems(a.orch.Items())
	a.pager.SetPages(a.orch.PageCount(), a.orch.PageIndex())
}

// fetch runs a catalog request in the background
func (a *App) fetch(req *search.Request) tea.Cmd {
	if req == nil {
		return nil
	}

	searcher := a.searcher
	timeout := a.cfg.TMDB.Timeout
	logger := a.logger

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		logger.Debug("fetching", "query", req.Key.Query, "page", req.Key.Page, "generation", req.Generation)

		var (
			result *catalog.ResultPage
			err    error
		)
		if searcher == nil {
			err = catalog.ErrTokenMissing
		} else {
			result, err = searcher.Search(ctx, req.Key.Query, req.Key.Page)
		}

		return common.SearchResultMsg{Response: search.Response{
			Generation: req.Generation,
			Key:        req.Key,
			Result:     result,
			Err:        err,
		}}
	}
}

func (a *App) View() string {
	if a.help.IsVisible() {
		return a.help.View()
	}
	if a.overlay.IsOpen() {
		return a.withToasts(a.overlay.View())
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styles.TitleStyle.Render("  MARQUEE  "))
	b.WriteString("  " + styles.SubtitleStyle.Render("Find a movie"))
	b.WriteString("\n\n")
	b.WriteString(a.searchBar.View())
	b.WriteString("\n\n")

	switch {
	case a.orch.Loading():
		b.WriteString(a.status.LoadingView())
	case a.orch.Failed():
		b.WriteString(a.status.ErrorView())
	case a.orch.Result() != nil:
		if a.orch.ShowPagination() {
			b.WriteString(a.pager.View())
			b.WriteString("\n\n")
		}
		b.WriteString(a.grid.View())
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(a.footer()))

	return a.withToasts(b.String())
}

func (a *App) footer() string {
	if a.focus == focusSearch {
		return "enter search • ↑/↓ recent • tab results • ctrl+c quit"
	}
	hint := "←↑↓→ move • enter details • / filter • s search"
	if a.orch.ShowPagination() {
		hint += " • [ ] page"
	}
	if a.orch.Failed() {
		hint += " • r retry"
	}
	return hint + " • ? help • q quit"
}

// withToasts stacks the toasts in the top-right corner of view
func (a *App) withToasts(view string) string {
	toasts := a.status.ToastsView()
	if toasts == "" {
		return view
	}
	if a.width == 0 || a.height == 0 {
		return toasts + "\n" + view
	}

	placed := lipgloss.Place(a.width, lipgloss.Height(toasts), lipgloss.Right, lipgloss.Top, toasts)
	lines := strings.Split(view, "\n")
	toastLines := strings.Split(placed, "\n")

	// toasts replace the top lines of the view
	if len(lines) > len(toastLines) {
		return strings.Join(append(toastLines, lines[len(toastLines):]...), "\n")
	}
	return placed
}
