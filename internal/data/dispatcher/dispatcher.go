package dispatcher

import (
	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/atomicstack/gallery-tui/internal/state"
)

type Result struct {
	CatalogUpdated bool
	Count          int
}

// Dispatcher applies background backend events to the stores.
type Dispatcher struct {
	catalog state.CatalogStore
}

func New(catalog state.CatalogStore) *Dispatcher {
	return &Dispatcher{catalog: catalog}
}

// Handle installs the snapshot carried by evt. Background refreshes do not
// count as user-issued loads, so the loading indicator is left alone.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Catalog.Failed(evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindCatalog:
		d.catalog.Apply(evt.Images)
		res.CatalogUpdated = true
		res.Count = len(evt.Images)
		events.Catalog.Loaded(res.Count, true)
	}
	return res
}
