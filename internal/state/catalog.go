package state

import "github.com/atomicstack/gallery-tui/internal/gallery"

// CatalogStore caches everything available to browse. It never filters or
// paginates; callers replace the collection wholesale.
type CatalogStore interface {
	Images() []gallery.Image
	Len() int
	Loaded() bool
	Loading() bool
	LastError() error
	BeginLoad() int
	FinishLoad(images []gallery.Image, err error) bool
	Apply(images []gallery.Image)
}

type catalogStore struct {
	images   []gallery.Image
	loaded   bool
	inFlight int
	lastErr  error
}

// NewCatalogStore returns an empty store.
func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (s *catalogStore) Images() []gallery.Image {
	return gallery.CloneImages(s.images)
}

func (s *catalogStore) Len() int {
	return len(s.images)
}

// Loaded reports whether any snapshot has been applied yet.
func (s *catalogStore) Loaded() bool {
	return s.loaded
}

// Loading reports whether at least one load is still outstanding.
func (s *catalogStore) Loading() bool {
	return s.inFlight > 0
}

func (s *catalogStore) LastError() error {
	return s.lastErr
}

// BeginLoad marks a load as issued and returns the number outstanding.
func (s *catalogStore) BeginLoad() int {
	s.inFlight++
	return s.inFlight
}

// FinishLoad settles one outstanding load. Whichever response settles last
// wins; a failure keeps the previous collection. It reports whether the
// collection was replaced.
func (s *catalogStore) FinishLoad(images []gallery.Image, err error) bool {
	if s.inFlight > 0 {
		s.inFlight--
	}
	if err != nil {
		s.lastErr = err
		return false
	}
	s.Apply(images)
	return true
}

// Apply installs a snapshot without touching the loading counter.
func (s *catalogStore) Apply(images []gallery.Image) {
	s.images = gallery.CloneImages(images)
	if s.images == nil {
		s.images = []gallery.Image{}
	}
	s.loaded = true
	s.lastErr = nil
}
