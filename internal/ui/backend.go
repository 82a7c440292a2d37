package ui

import (
	"context"

	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/atomicstack/gallery-tui/internal/ui/command"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type catalogLoadedMsg struct {
	images []gallery.Image
	err    error
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

// loadCatalog issues one catalog fetch. Overlapping loads are allowed;
// whichever settles last wins.
func (m *Model) loadCatalog() tea.Cmd {
	wasBusy := m.busy()
	inFlight := m.catalog.BeginLoad()
	events.Catalog.LoadStart(inFlight)
	client := m.client
	cmd := m.bus.Execute(command.Request{
		ID:    "catalog",
		Label: "all-images",
		Run: func(ctx context.Context) tea.Msg {
			if client == nil {
				return catalogLoadedMsg{err: errNoClient}
			}
			images, err := client.AllImages(ctx)
			return catalogLoadedMsg{images: images, err: err}
		},
	})
	return tea.Batch(cmd, m.startSpinner(wasBusy))
}

func (m *Model) handleCatalogLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(catalogLoadedMsg)
	if !ok {
		return nil
	}
	if !m.catalog.FinishLoad(loaded.images, loaded.err) {
		events.Catalog.Failed(loaded.err)
		return nil
	}
	events.Catalog.Loaded(len(loaded.images), false)
	m.afterCatalogChange()
	return nil
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	if res := m.dispatcher.Handle(eventMsg.event); res.CatalogUpdated {
		m.afterCatalogChange()
	}
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// afterCatalogChange keeps the browse page inside a catalog that shrank.
// Search results are never touched by a catalog refresh.
func (m *Model) afterCatalogChange() {
	if _, browsing := m.session.Active().(uistate.Browsing); !browsing {
		return
	}
	m.pager.Clamp(m.catalog.Len())
}
