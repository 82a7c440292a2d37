package events

import "github.com/atomicstack/gallery-tui/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) LoadStart(inFlight int) {
	logging.Trace("catalog.load.start", map[string]interface{}{"inFlight": inFlight})
}

func (CatalogTracer) Loaded(count int, background bool) {
	logging.Trace("catalog.load.done", map[string]interface{}{"count": count, "background": background})
}

func (CatalogTracer) Failed(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("catalog.load.error", map[string]interface{}{"error": err.Error()})
}
