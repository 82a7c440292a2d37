package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/gallery-tui/internal/gallery"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCatalog Kind = iota
)

// Event conveys a catalog snapshot or an error from a background poll.
type Event struct {
	Kind   Kind
	Images []gallery.Image
	Err    error
}

// CatalogFetcher loads the full catalog.
type CatalogFetcher interface {
	AllImages(ctx context.Context) ([]gallery.Image, error)
}

// Watcher re-fetches the catalog at a fixed interval and publishes events.
// The first fetch happens one interval after start; the initial load is
// owned by the caller.
type Watcher struct {
	fetcher  CatalogFetcher
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher polling fetcher every interval. A
// non-positive interval yields a watcher whose event channel is closed
// immediately.
func NewWatcher(fetcher CatalogFetcher, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fetcher:  fetcher,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	if fetcher != nil && interval > 0 {
		w.startCatalogPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. An in-flight fetch is abandoned through its
// context; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startCatalogPoller() {
	throttle := newThrottle(minPollSpacing)
	w.wg.Add(1)
	go w.poll(KindCatalog, func(ctx context.Context) ([]gallery.Image, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return w.fetcher.AllImages(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) ([]gallery.Image, error)) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			images, err := fetch(w.ctx)
			if w.ctx.Err() != nil {
				return
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Kind: kind, Images: images, Err: err}:
			}
		}
	}
}
