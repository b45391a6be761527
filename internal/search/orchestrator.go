// Package search holds the state machine behind the movie search screen.
//
// The Orchestrator never performs I/O. Operations that need a fetch return a
// *Request; the caller runs it and hands the outcome back through Resolve.
// Every request carries a generation number and only the response for the
// newest generation is committed, so a slow response for an abandoned key can
// never overwrite newer data.
package search

import (
	"strings"

	"github.com/justchokingaround/marquee/internal/catalog"
)

// Status is the fetch lifecycle state for the current key
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Key identifies one logical fetch
type Key struct {
	Query string
	Page  int
}

// Request asks the caller to fetch Key and report back with Generation
type Request struct {
	Generation uint64
	Key        Key
}

// Response is the result of running a Request
type Response struct {
	Generation uint64
	Key        Key
	Result     *catalog.ResultPage
	Err        error
}

// Outcome tells the caller what Resolve did
type Outcome struct {
	// Stale is set when the response belonged to a superseded request and
	// was dropped.
	Stale bool
	// NotifyEmpty is set once per successful fetch that returned no movies.
	NotifyEmpty bool
}

// Orchestrator owns the query, page, selection and fetch state
type Orchestrator struct {
	query    string
	page     int
	status   Status
	result   *catalog.ResultPage
	err      error
	selected *catalog.Movie

	generation uint64
	// totalPages is the page count last reported for the current query.
	// It is only meaningful once pagesKnown is set.
	totalPages int
	pagesKnown bool
}

// New returns an idle orchestrator
func New() *Orchestrator {
	return &Orchestrator{page: 1}
}

// SubmitQuery starts a new search. Surrounding whitespace is ignored and an
// empty query returns to idle without fetching.
func (o *Orchestrator) SubmitQuery(text string) *Request {
	o.query = strings.TrimSpace(text)
	o.page = 1
	o.generation++
	o.totalPages = 0
	o.pagesKnown = false
	o.result = nil
	o.err = nil

	if o.query == "" {
		o.status = StatusIdle
		return nil
	}

	o.status = StatusLoading
	return o.request()
}

// ChangePage moves to 1-based page n of the current query. It is a no-op
// while idle. n is clamped to [1, total pages] once the page count is known;
// a query known to have no pages never pages.
func (o *Orchestrator) ChangePage(n int) *Request {
	if o.query == "" {
		return nil
	}

	if n < 1 {
		n = 1
	}
	if o.pagesKnown {
		if o.totalPages == 0 {
			return nil
		}
		if n > o.totalPages {
			n = o.totalPages
		}
	}

	// Re-requesting the page on screen or in flight does nothing; after an
	// error it retries.
	if n == o.page && (o.status == StatusSuccess || o.status == StatusLoading) {
		return nil
	}

	o.page = n
	o.generation++
	o.result = nil
	o.err = nil
	o.status = StatusLoading
	return o.request()
}

// Resolve commits a response if it belongs to the current generation
func (o *Orchestrator) Resolve(resp Response) Outcome {
	if resp.Generation != o.generation || o.status != StatusLoading {
		return Outcome{Stale: true}
	}

	if resp.Err != nil {
		o.status = StatusError
		o.err = resp.Err
		o.result = nil
		return Outcome{}
	}

	result := resp.Result
	if result == nil {
		result = &catalog.ResultPage{}
	}

	o.status = StatusSuccess
	o.result = result
	o.err = nil
	o.totalPages = result.TotalPages
	o.pagesKnown = true

	return Outcome{NotifyEmpty: len(result.Results) == 0}
}

// Select opens the detail overlay for m. The orchestrator keeps its own copy
// so the overlay survives later result changes.
func (o *Orchestrator) Select(m catalog.Movie) {
	o.selected = &m
}

// ClearSelection closes the detail overlay
func (o *Orchestrator) ClearSelection() {
	o.selected = nil
}

// Selected returns the movie shown in the overlay, or nil
func (o *Orchestrator) Selected() *catalog.Movie {
	return o.selected
}

// Query returns the active query; empty means idle
func (o *Orchestrator) Query() string {
	return o.query
}

// Page returns the 1-based current page
func (o *Orchestrator) Page() int {
	return o.page
}

// Key returns the current (query, page) pair
func (o *Orchestrator) Key() Key {
	return Key{Query: o.query, Page: o.page}
}

// Generation returns the generation of the newest request
func (o *Orchestrator) Generation() uint64 {
	return o.generation
}

// Status returns the fetch state for the current key
func (o *Orchestrator) Status() Status {
	return o.status
}

// Loading reports whether a fetch for the current key is in flight
func (o *Orchestrator) Loading() bool {
	return o.status == StatusLoading
}

// Failed reports whether the fetch for the current key failed
func (o *Orchestrator) Failed() bool {
	return o.status == StatusError
}

// Err returns the typed error of the last failed fetch
func (o *Orchestrator) Err() error {
	return o.err
}

// Result returns the page held for the current key, or nil
func (o *Orchestrator) Result() *catalog.ResultPage {
	if o.status != StatusSuccess {
		return nil
	}
	return o.result
}

// Items returns the movies to display, in upstream order
func (o *Orchestrator) Items() []catalog.Movie {
	if r := o.Result(); r != nil {
		return r.Results
	}
	return nil
}

// ShowPagination reports whether the pagination control should be shown
func (o *Orchestrator) ShowPagination() bool {
	r := o.Result()
	return r != nil && r.TotalPages > 1
}

// PageCount returns the page count of the displayed result
func (o *Orchestrator) PageCount() int {
	if r := o.Result(); r != nil {
		return r.TotalPages
	}
	return 0
}

// PageIndex returns the zero-based page for the pagination control
func (o *Orchestrator) PageIndex() int {
	return o.page - 1
}

func (o *Orchestrator) request() *Request {
	return &Request{
		Generation: o.generation,
		Key:        o.Key(),
	}
}
