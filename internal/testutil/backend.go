package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/atomicstack/gallery-tui/internal/gallery"
)

// Request paths served by FakeBackend.
const (
	PathAllImages     = "/all-images"
	PathSimilarImages = "/similar-images"
	PathUpload        = "/gallery/upload"
)

// Recorded captures one request received by the fake backend.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Files  []UploadedFile
}

// UploadedFile is one multipart "files" part received on upload.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// FakeBackend is an in-process stand-in for the caption search service.
type FakeBackend struct {
	*httptest.Server

	mu        sync.Mutex
	images    []gallery.Image
	results   map[string][]gallery.SearchResult
	statuses  map[string]int
	remoteErr map[string]string
	requests  []Recorded
}

// NewFakeBackend starts a fake backend that is closed when the test ends.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		results:   make(map[string][]gallery.SearchResult),
		statuses:  make(map[string]int),
		remoteErr: make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(PathAllImages, f.handleAllImages)
	mux.HandleFunc(PathSimilarImages, f.handleSimilarImages)
	mux.HandleFunc(PathUpload, f.handleUpload)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// SetImages replaces the served catalog.
func (f *FakeBackend) SetImages(images ...gallery.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append([]gallery.Image(nil), images...)
}

// SetResults registers the ranked response for a caption query.
func (f *FakeBackend) SetResults(caption string, results ...gallery.SearchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[caption] = append([]gallery.SearchResult(nil), results...)
}

// FailWith makes every request to path answer with status.
func (f *FakeBackend) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[path] = status
}

// RemoteError makes path answer 200 with an `{"error": msg}` envelope.
func (f *FakeBackend) RemoteError(path, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remoteErr[path] = msg
}

// Requests returns every request received so far.
func (f *FakeBackend) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Recorded(nil), f.requests...)
}

// RequestsTo returns the requests received for path.
func (f *FakeBackend) RequestsTo(path string) []Recorded {
	var out []Recorded
	for _, r := range f.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// ImageURL returns the absolute URL the fake serves filename under.
func (f *FakeBackend) ImageURL(filename string) string {
	return f.URL + "/gallery/" + filename
}

func (f *FakeBackend) record(r *http.Request, files []UploadedFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Files:  files,
	})
}

// failure reports whether path is configured to fail and writes the response.
func (f *FakeBackend) failure(w http.ResponseWriter, path string) bool {
	f.mu.Lock()
	status := f.statuses[path]
	msg := f.remoteErr[path]
	f.mu.Unlock()
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return true
	}
	if msg != "" {
		writeJSON(w, map[string]string{"error": msg})
		return true
	}
	return false
}

func (f *FakeBackend) handleAllImages(w http.ResponseWriter, r *http.Request) {
	f.record(r, nil)
	if f.failure(w, PathAllImages) {
		return
	}
	f.mu.Lock()
	images := make([]map[string]string, len(f.images))
	for i, img := range f.images {
		images[i] = map[string]string{"filename": img.Filename, "relative_path": img.RelativePath}
	}
	f.mu.Unlock()
	writeJSON(w, map[string]interface{}{"total": len(images), "images": images})
}

func (f *FakeBackend) handleSimilarImages(w http.ResponseWriter, r *http.Request) {
	f.record(r, nil)
	if f.failure(w, PathSimilarImages) {
		return
	}
	caption := r.URL.Query().Get("caption")
	topK, err := strconv.Atoi(r.URL.Query().Get("top_k"))
	if err != nil {
		topK = 3
	}
	f.mu.Lock()
	results := f.results[caption]
	f.mu.Unlock()
	if topK < len(results) {
		results = results[:topK]
	}
	hits := make([]map[string]string, len(results))
	for i, res := range results {
		hits[i] = map[string]string{"image_path": res.ImagePath, "caption": res.Caption}
	}
	writeJSON(w, map[string]interface{}{"caption": caption, "top_k": topK, "relative_path": hits})
}

func (f *FakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		f.record(r, nil)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reader, err := r.MultipartReader()
	if err != nil {
		f.record(r, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var files []UploadedFile
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			f.record(r, files)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(part)
		if part.FormName() == "files" {
			files = append(files, UploadedFile{
				Name:        part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	f.record(r, files)
	if f.failure(w, PathUpload) {
		return
	}
	f.mu.Lock()
	for _, file := range files {
		f.images = append(f.images, gallery.Image{Filename: file.Name, RelativePath: f.URL + "/gallery/" + file.Name})
	}
	f.mu.Unlock()
	writeJSON(w, map[string]interface{}{"uploaded": len(files)})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
