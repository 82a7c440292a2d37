package events

import "github.com/atomicstack/gallery-tui/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Submit(token uint64, query string, limit int) {
	logging.Trace("search.submit", map[string]interface{}{"token": token, "query": query, "limit": limit})
}

func (SearchTracer) Rejected(query string) {
	logging.Trace("search.rejected", map[string]interface{}{"query": query})
}

func (SearchTracer) Applied(token uint64, count int) {
	logging.Trace("search.applied", map[string]interface{}{"token": token, "count": count})
}

func (SearchTracer) Failed(token uint64, err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("search.failed", map[string]interface{}{"token": token, "error": err.Error()})
}

// Stale records a response dropped because a newer request superseded it.
func (SearchTracer) Stale(token, latest uint64) {
	logging.Trace("search.stale", map[string]interface{}{"token": token, "latest": latest})
}

func (SearchTracer) Cleared() {
	logging.Trace("search.clear", nil)
}
