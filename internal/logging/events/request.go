package events

import "github.com/atomicstack/gallery-tui/internal/logging"

type RequestTracer struct{}

var Request = RequestTracer{}

func (RequestTracer) Send(id, method, url string) {
	logging.Trace("http.request", map[string]interface{}{"id": id, "method": method, "url": url})
}

func (RequestTracer) Done(id string, status int, elapsedMS int64) {
	logging.Trace("http.response", map[string]interface{}{"id": id, "status": status, "elapsedMs": elapsedMS})
}
