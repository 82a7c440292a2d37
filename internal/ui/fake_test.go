package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	tea "github.com/charmbracelet/bubbletea"
)

type searchCall struct {
	caption string
	topK    int
}

// fakeGallery answers synchronously; tests order completions through the
// harness rather than through the fake.
type fakeGallery struct {
	images    []gallery.Image
	imagesErr error
	results   map[string][]gallery.SearchResult
	searchErr error
	uploadErr error

	loads    int
	searches []searchCall
	uploads  [][]string
}

func (f *fakeGallery) AllImages(ctx context.Context) ([]gallery.Image, error) {
	f.loads++
	if f.imagesErr != nil {
		return nil, f.imagesErr
	}
	return gallery.CloneImages(f.images), nil
}

func (f *fakeGallery) SimilarImages(ctx context.Context, caption string, topK int) ([]gallery.SearchResult, error) {
	f.searches = append(f.searches, searchCall{caption: caption, topK: topK})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return gallery.CloneResults(f.results[caption]), nil
}

func (f *fakeGallery) Upload(ctx context.Context, files []backend.UploadFile) error {
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Name
	}
	f.uploads = append(f.uploads, names)
	if f.uploadErr != nil {
		return f.uploadErr
	}
	for _, file := range files {
		f.images = append(f.images, gallery.Image{Filename: file.Name, RelativePath: "http://host/" + file.Name})
	}
	return nil
}

func makeImages(n int) []gallery.Image {
	out := make([]gallery.Image, n)
	for i := range out {
		name := fmt.Sprintf("img-%02d.png", i+1)
		out[i] = gallery.Image{Filename: name, RelativePath: "http://host/" + name}
	}
	return out
}

func makeResults(n int, prefix string) []gallery.SearchResult {
	out := make([]gallery.SearchResult, n)
	for i := range out {
		out[i] = gallery.SearchResult{
			ImagePath: fmt.Sprintf("http://host/%s-%d.png", prefix, i+1),
			Caption:   fmt.Sprintf("%s caption %d", prefix, i+1),
		}
	}
	return out
}

func memUpload(name, body string) backend.UploadFile {
	return backend.UploadFile{
		Name: name,
		Size: int64(len(body)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}

func newTestHarness(fake *fakeGallery) *Harness {
	h := NewHarness(NewModel(fake, Options{Limit: 3}))
	h.Init()
	return h
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeSearch(h *Harness, query string) {
	h.Send(keyRunes("/"))
	if query != "" {
		h.Send(keyRunes(query))
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
}
