package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	BackendURL         string
	SkipBrowserWarning bool
	Timeout            time.Duration
	Limit              int
	Refresh            time.Duration
	Width              int
	Height             int
	ShowFooter         bool
}

// NewClient builds the backend client described by cfg.
func NewClient(cfg Config) (*backend.Client, error) {
	client, err := backend.NewClient(cfg.BackendURL,
		backend.WithTimeout(cfg.Timeout),
		backend.WithBrowserWarningSkipped(cfg.SkipBrowserWarning),
	)
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}
	return client, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(ctx context.Context, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := NewClient(cfg)
	if err != nil {
		return err
	}
	var watcher *backend.Watcher
	if cfg.Refresh > 0 {
		watcher = backend.NewWatcher(client, cfg.Refresh)
		defer watcher.Stop()
	}
	model := ui.NewModel(client, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Limit:      cfg.Limit,
		Title:      "gallery @ " + client.BaseURL(),
		Watcher:    watcher,
		Context:    ctx,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
