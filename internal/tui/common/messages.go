package common

import (
	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/search"
)

// PerformSearchMsg submits a new query from the search input
type PerformSearchMsg struct {
	Query string
}

// SearchResultMsg carries a finished catalog fetch back to the app
type SearchResultMsg struct {
	Response search.Response
}

// PageChangedMsg is sent by the pagination control. Selected is zero-based.
type PageChangedMsg struct {
	Selected int
}

// SelectMovieMsg opens the detail overlay for a movie
type SelectMovieMsg struct {
	Movie catalog.Movie
}

// CloseOverlayMsg closes the detail overlay
type CloseOverlayMsg struct{}

// FocusSearchMsg moves keyboard focus to the search input
type FocusSearchMsg struct{}

// RecentSearchesMsg delivers the recent searches loaded from history
type RecentSearchesMsg struct {
	Queries []string
	Err     error
}

// ToastMsg asks the app to show a transient notification
type ToastMsg struct {
	Text  string
	Error bool
}
