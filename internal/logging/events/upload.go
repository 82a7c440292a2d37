package events

import "github.com/atomicstack/gallery-tui/internal/logging"

type UploadTracer struct{}

var Upload = UploadTracer{}

func (UploadTracer) Start(files int, bytes int64) {
	logging.Trace("upload.start", map[string]interface{}{"files": files, "bytes": bytes})
}

func (UploadTracer) Ignored(reason string) {
	logging.Trace("upload.ignored", map[string]interface{}{"reason": reason})
}

func (UploadTracer) Done(files int) {
	logging.Trace("upload.done", map[string]interface{}{"files": files})
}

func (UploadTracer) Failed(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("upload.failed", map[string]interface{}{"error": err.Error()})
}
