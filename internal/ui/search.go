package ui

import (
	"context"
	"errors"

	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/atomicstack/gallery-tui/internal/ui/command"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoClient = errors.New("no gallery backend configured")

type searchResultMsg struct {
	token   uint64
	results []gallery.SearchResult
	err     error
}

// submitSearch sends the query input. The search control is busy while a
// request is pending, so a second submit is refused until it settles.
func (m *Model) submitSearch() tea.Cmd {
	query := m.query.Value()
	if m.session.Pending() {
		events.Search.Rejected(query)
		m.setInfo("search already in progress")
		return nil
	}
	wasBusy := m.busy()
	req, ok := m.session.Submit(query, m.limit)
	if !ok {
		m.query.SetValue("")
		events.Search.Cleared()
		m.resetPage("clear")
		return nil
	}
	events.Search.Submit(req.Token, req.Query, req.Limit)
	m.resetPage("submit")
	client := m.client
	cmd := m.bus.Execute(command.Request{
		ID:    "search",
		Label: req.Query,
		Run: func(ctx context.Context) tea.Msg {
			if client == nil {
				return searchResultMsg{token: req.Token, err: errNoClient}
			}
			results, err := client.SimilarImages(ctx, req.Query, req.Limit)
			return searchResultMsg{token: req.Token, results: results, err: err}
		},
	})
	return tea.Batch(cmd, m.startSpinner(wasBusy))
}

func (m *Model) handleSearchResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(searchResultMsg)
	if !ok {
		return nil
	}
	switch m.session.Resolve(res.token, res.results, res.err) {
	case uistate.OutcomeStale:
		events.Search.Stale(res.token, m.session.Latest())
		return nil
	case uistate.OutcomeFailed:
		events.Search.Failed(res.token, res.err)
	case uistate.OutcomeActive:
		events.Search.Applied(res.token, len(res.results))
	}
	m.resetPage("resolve")
	return nil
}

// clearSearch returns to the catalog from any search state.
func (m *Model) clearSearch() {
	m.query.SetValue("")
	if m.session.Clear() {
		events.Search.Cleared()
	}
	m.resetPage("clear")
}

func (m *Model) changeLimit(delta int) {
	next := clampLimit(m.limit + delta)
	if next == m.limit {
		return
	}
	m.limit = next
	events.UI.Limit(next)
}
