package state

import (
	"errors"
	"testing"

	"github.com/atomicstack/gallery-tui/internal/gallery"
)

func imgs(names ...string) []gallery.Image {
	out := make([]gallery.Image, len(names))
	for i, n := range names {
		out[i] = gallery.Image{Filename: n, RelativePath: "http://h/gallery/" + n}
	}
	return out
}

func TestCatalogLoadLifecycle(t *testing.T) {
	s := NewCatalogStore()
	if s.Loading() || s.Loaded() {
		t.Fatalf("expected idle empty store")
	}
	if n := s.BeginLoad(); n != 1 {
		t.Fatalf("expected 1 in flight, got %d", n)
	}
	if !s.Loading() {
		t.Fatalf("expected loading while in flight")
	}
	if !s.FinishLoad(imgs("a", "b"), nil) {
		t.Fatalf("expected replacement on success")
	}
	if s.Loading() || !s.Loaded() || s.Len() != 2 {
		t.Fatalf("unexpected state loading=%v loaded=%v len=%d", s.Loading(), s.Loaded(), s.Len())
	}
}

func TestCatalogFailureKeepsPreviousCollection(t *testing.T) {
	s := NewCatalogStore()
	s.BeginLoad()
	s.FinishLoad(imgs("a"), nil)
	s.BeginLoad()
	if s.FinishLoad(nil, errors.New("offline")) {
		t.Fatalf("expected no replacement on failure")
	}
	if s.Len() != 1 || s.LastError() == nil {
		t.Fatalf("expected previous image and recorded error, got len=%d err=%v", s.Len(), s.LastError())
	}
	if s.Loading() {
		t.Fatalf("expected load settled")
	}
}

func TestCatalogLastResolvedWins(t *testing.T) {
	s := NewCatalogStore()
	s.BeginLoad()
	s.BeginLoad()
	// second issued resolves first
	s.FinishLoad(imgs("new1", "new2"), nil)
	if !s.Loading() {
		t.Fatalf("expected one load still outstanding")
	}
	s.FinishLoad(imgs("old"), nil)
	got := s.Images()
	if len(got) != 1 || got[0].Filename != "old" {
		t.Fatalf("expected last resolved snapshot, got %#v", got)
	}
}

func TestCatalogEmptySnapshotIsLoaded(t *testing.T) {
	s := NewCatalogStore()
	s.BeginLoad()
	s.FinishLoad(nil, nil)
	if !s.Loaded() || s.Len() != 0 || s.Images() == nil {
		t.Fatalf("expected loaded empty catalog")
	}
}

func TestCatalogImagesReturnsCopy(t *testing.T) {
	s := NewCatalogStore()
	s.Apply(imgs("a"))
	got := s.Images()
	got[0].Filename = "mutated"
	if s.Images()[0].Filename != "a" {
		t.Fatalf("expected store isolation from caller mutation")
	}
}
