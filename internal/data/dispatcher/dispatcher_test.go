package dispatcher

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/atomicstack/gallery-tui/internal/state"
)

func TestHandleCatalogSnapshot(t *testing.T) {
	store := state.NewCatalogStore()
	d := New(store)
	res := d.Handle(backend.Event{Kind: backend.KindCatalog, Images: []gallery.Image{{Filename: "a"}}})
	if !res.CatalogUpdated || res.Count != 1 {
		t.Fatalf("unexpected result %#v", res)
	}
	if store.Len() != 1 || store.Loading() {
		t.Fatalf("expected applied snapshot without loading flag")
	}
}

func TestHandleErrorLeavesStore(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "gallery.log"))
	t.Cleanup(func() { logging.Configure("") })
	store := state.NewCatalogStore()
	store.Apply([]gallery.Image{{Filename: "keep"}})
	d := New(store)
	res := d.Handle(backend.Event{Kind: backend.KindCatalog, Err: errors.New("down")})
	if res.CatalogUpdated {
		t.Fatalf("expected no update on error")
	}
	if store.Len() != 1 {
		t.Fatalf("expected previous catalog kept")
	}
}
