package events

import "github.com/atomicstack/gallery-tui/internal/logging"

type UITracer struct{}

type PageTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Page    = PageTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(target string) {
	logging.Trace("ui.focus", map[string]interface{}{"target": target})
}

func (UITracer) Limit(limit int) {
	logging.Trace("ui.limit", map[string]interface{}{"limit": limit})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (PageTracer) Set(page, totalPages int) {
	logging.Trace("page.set", map[string]interface{}{"page": page, "totalPages": totalPages})
}

func (PageTracer) Rejected(page, totalPages int) {
	logging.Trace("page.rejected", map[string]interface{}{"page": page, "totalPages": totalPages})
}

func (PageTracer) Reset(reason string) {
	logging.Trace("page.reset", map[string]interface{}{"reason": reason})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
