package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/atomicstack/gallery-tui/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

type uploadDoneMsg struct {
	files int
	err   error
}

// submitUpload resolves the upload prompt into files and starts the job.
func (m *Model) submitUpload() tea.Cmd {
	patterns := strings.Fields(m.uploadInput.Value())
	m.uploadInput.SetValue("")
	files, err := backend.CollectFiles(patterns)
	if err != nil {
		logging.Error(err)
		if len(files) > 0 {
			m.setInfo("some paths were skipped")
		}
	}
	return m.startUpload(files)
}

// startUpload sends files as one request. Nothing is sent for an empty set
// or while another upload is outstanding.
func (m *Model) startUpload(files []backend.UploadFile) tea.Cmd {
	if len(files) == 0 {
		events.Upload.Ignored("no files")
		m.setInfo("no files to upload")
		return nil
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	size := backend.TotalSize(files)
	wasBusy := m.busy()
	if !m.upload.Start(names, size) {
		events.Upload.Ignored("upload in flight")
		return nil
	}
	events.Upload.Start(len(files), size)
	client := m.client
	batch := append([]backend.UploadFile(nil), files...)
	cmd := m.bus.Execute(command.Request{
		ID:    "upload",
		Label: fmt.Sprintf("%d files", len(batch)),
		Run: func(ctx context.Context) tea.Msg {
			if client == nil {
				return uploadDoneMsg{files: len(batch), err: errNoClient}
			}
			return uploadDoneMsg{files: len(batch), err: client.Upload(ctx, batch)}
		},
	})
	return tea.Batch(cmd, m.startSpinner(wasBusy))
}

// handleUploadDoneMsg returns the affordance to idle. Only a successful
// upload refreshes the catalog; failures are logged and otherwise silent.
func (m *Model) handleUploadDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(uploadDoneMsg)
	if !ok {
		return nil
	}
	if !m.upload.Finish(done.err) {
		if done.err != nil {
			events.Upload.Failed(done.err)
		}
		return nil
	}
	events.Upload.Done(done.files)
	return m.loadCatalog()
}

func uploadStatusLine(names []string, bytes int64) string {
	noun := "files"
	if len(names) == 1 {
		noun = "file"
	}
	return fmt.Sprintf("Uploading %d %s (%s)…", len(names), noun, humanize.Bytes(uint64(bytes)))
}
