package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/marquee/internal/search"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	var cmd tea.Cmd

	if a.help.IsVisible() {
		switch msg.String() {
		case "?", "esc", "q":
			a.help.Hide()
			return a, nil
		}
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}

	if a.overlay.IsOpen() {
		if msg.String() == "?" {
			a.help.Toggle()
			return a, nil
		}
		a.overlay, cmd = a.overlay.Update(msg)
		return a, cmd
	}

	if a.focus == focusSearch {
		return a.handleSearchKey(msg)
	}
	return a.handleResultsKey(msg)
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return a, a.setFocus(focusResults)
	case "esc":
		if a.orch.Status() != search.StatusIdle {
			return a, a.setFocus(focusResults)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchBar, cmd = a.searchBar.Update(msg)
	return a, cmd
}

func (a *App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.grid.IsFiltering() {
		a.grid, cmd = a.grid.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.help.Toggle()
		return a, nil
	case "tab", "s":
		return a, a.setFocus(focusSearch)
	case "r":
		if !a.orch.Failed() {
			return a, nil
		}
		req := a.orch.ChangePage(a.orch.Page())
		a.syncResults()
		return a, tea.Batch(a.fetch(req), a.status.Tick())
	case "[", "]", "{", "}", "pgup", "pgdown", "ctrl+left", "ctrl+right", "ctrl+home", "ctrl+end":
		if a.orch.ShowPagination() {
			a.pager, cmd = a.pager.Update(msg)
		}
		return a, cmd
	}

	if a.orch.Result() != nil {
		a.grid, cmd = a.grid.Update(msg)
	}
	return a, cmd
}
