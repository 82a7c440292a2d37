package state

import (
	"fmt"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/gallery"
)

// SearchStatus is the lifecycle position of the search session.
type SearchStatus int

const (
	SearchIdle SearchStatus = iota
	SearchPending
	SearchActive
	SearchFailed
)

func (s SearchStatus) String() string {
	switch s {
	case SearchPending:
		return "pending"
	case SearchActive:
		return "active"
	case SearchFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Result limits advertised by the query controls.
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 3
)

// ClampLimit enforces the lower bound sent to the backend. No upper bound
// is applied here; the backend may cap on its own.
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	return n
}

// ActiveList selects the list on screen. It is either Browsing or
// Searching; nothing else implements it.
type ActiveList interface {
	activeList()
}

// Browsing shows the catalog.
type Browsing struct{}

func (Browsing) activeList() {}

// Searching shows the result set of one query.
type Searching struct {
	Query   string
	Limit   int
	Status  SearchStatus
	Results []gallery.SearchResult
	Token   uint64
}

func (Searching) activeList() {}

// StatusLine summarises the search for display.
func (s Searching) StatusLine() string {
	if s.Status == SearchPending {
		return "Searching…"
	}
	noun := "results"
	if len(s.Results) == 1 {
		noun = "result"
	}
	return fmt.Sprintf("Found %d %s for %q", len(s.Results), noun, s.Query)
}

// SearchRequest is the call a submit asks the caller to issue.
type SearchRequest struct {
	Token uint64
	Query string
	Limit int
}

// Outcome describes what Resolve did with a response.
type Outcome int

const (
	OutcomeStale Outcome = iota
	OutcomeActive
	OutcomeFailed
)

// SearchSession owns the browse/search switch. Every submit issues a new
// token; a response is applied only while its token is still the latest
// issued and the session is still waiting on it.
type SearchSession struct {
	active ActiveList
	issued uint64
}

// NewSearchSession starts in browse mode.
func NewSearchSession() *SearchSession {
	return &SearchSession{active: Browsing{}}
}

// Active returns the current selector value.
func (s *SearchSession) Active() ActiveList {
	if sr, ok := s.active.(Searching); ok {
		sr.Results = gallery.CloneResults(sr.Results)
		return sr
	}
	return s.active
}

// Searching returns the search state when a search is on screen.
func (s *SearchSession) Searching() (Searching, bool) {
	sr, ok := s.Active().(Searching)
	return sr, ok
}

// Status reports the session lifecycle position.
func (s *SearchSession) Status() SearchStatus {
	if sr, ok := s.active.(Searching); ok {
		return sr.Status
	}
	return SearchIdle
}

// Pending reports whether a search response is awaited.
func (s *SearchSession) Pending() bool {
	return s.Status() == SearchPending
}

// Latest returns the most recently issued token.
func (s *SearchSession) Latest() uint64 {
	return s.issued
}

// Submit starts a search for query. A blank query leaves search mode and
// issues nothing. A submit while another search is pending supersedes it.
func (s *SearchSession) Submit(query string, limit int) (SearchRequest, bool) {
	if strings.TrimSpace(query) == "" {
		s.Clear()
		return SearchRequest{}, false
	}
	s.issued++
	req := SearchRequest{Token: s.issued, Query: query, Limit: ClampLimit(limit)}
	s.active = Searching{
		Query:  req.Query,
		Limit:  req.Limit,
		Status: SearchPending,
		Token:  req.Token,
	}
	return req, true
}

// Resolve applies the response for token. Results are kept in backend
// order. A failure settles into an empty result set.
func (s *SearchSession) Resolve(token uint64, results []gallery.SearchResult, err error) Outcome {
	sr, ok := s.active.(Searching)
	if !ok || token != s.issued || sr.Token != token || sr.Status != SearchPending {
		return OutcomeStale
	}
	if err != nil {
		sr.Status = SearchFailed
		sr.Results = []gallery.SearchResult{}
		s.active = sr
		return OutcomeFailed
	}
	sr.Status = SearchActive
	sr.Results = gallery.CloneResults(results)
	if sr.Results == nil {
		sr.Results = []gallery.SearchResult{}
	}
	s.active = sr
	return OutcomeActive
}

// Clear returns to browse mode, discarding query and results. It reports
// whether a search was on screen.
func (s *SearchSession) Clear() bool {
	_, was := s.active.(Searching)
	s.active = Browsing{}
	return was
}
