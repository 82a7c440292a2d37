package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Batches are expanded in order and spinner animation is not replayed.
//
// In deferred mode commands still run immediately, but the messages they
// produce are held back until the test delivers them, so a test can choose
// the order in which asynchronous completions reach Update.
type Harness struct {
	model    *Model
	deferred bool
	held     []tea.Msg
	quit     bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Defer switches deferred delivery on or off.
func (h *Harness) Defer(enabled bool) {
	h.deferred = enabled
}

// Init runs the model's Init command.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.deliver(msg)
}

// Held returns the messages waiting for delivery, oldest first.
func (h *Harness) Held() []tea.Msg {
	return append([]tea.Msg(nil), h.held...)
}

// Release delivers the held message at index i.
func (h *Harness) Release(i int) {
	if i < 0 || i >= len(h.held) {
		return
	}
	msg := h.held[i]
	h.held = append(h.held[:i], h.held[i+1:]...)
	h.deliver(msg)
}

// ReleaseAll delivers held messages in order until none remain.
func (h *Harness) ReleaseAll() {
	for len(h.held) > 0 {
		h.Release(0)
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

func (h *Harness) deliver(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, next := range msg {
			h.processCmd(next)
		}
	case spinner.TickMsg:
		return
	case tea.QuitMsg:
		h.quit = true
	default:
		if h.deferred {
			h.held = append(h.held, msg)
			return
		}
		h.deliver(msg)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
