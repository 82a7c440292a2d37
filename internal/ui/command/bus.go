package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/gallery-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates one collaborator call.
type Request struct {
	ID    string
	Label string
	Run   func(context.Context) tea.Msg
}

// Bus turns collaborator calls into Bubble Tea commands.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus bound to ctx. A nil ctx means Background.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Execute wraps req into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run(b.ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
