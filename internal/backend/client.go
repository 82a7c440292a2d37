package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/google/uuid"
)

const (
	pathAllImages     = "/all-images"
	pathSimilarImages = "/similar-images"
	pathUpload        = "/gallery/upload"

	headerSkipBrowserWarning = "ngrok-skip-browser-warning"
	headerRequestID          = "X-Request-ID"

	uploadField = "files"

	// DefaultTimeout bounds a single collaborator call.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 64 * 1024
)

// Client talks to the caption search backend.
type Client struct {
	baseURL            *url.URL
	httpClient         *http.Client
	skipBrowserWarning bool
	newRequestID       func() string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithBrowserWarningSkipped toggles the tunnel interstitial suppression header.
func WithBrowserWarningSkipped(skip bool) Option {
	return func(c *Client) {
		c.skipBrowserWarning = skip
	}
}

// NewClient builds a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:            u,
		httpClient:         &http.Client{Timeout: DefaultTimeout},
		skipBrowserWarning: true,
		newRequestID:       newRequestID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseBaseURL validates a backend base URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url has no host (got %q)", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type imageRecord struct {
	Filename     string `json:"filename"`
	RelativePath string `json:"relative_path"`
}

type allImagesResponse struct {
	Total  int           `json:"total,omitempty"`
	Images []imageRecord `json:"images"`
	Error  string        `json:"error,omitempty"`
}

type resultRecord struct {
	ImagePath string `json:"image_path"`
	Caption   string `json:"caption"`
}

// similarImagesResponse keeps the envelope naming of the backend: the
// ranked list lives under "relative_path".
type similarImagesResponse struct {
	Caption      string         `json:"caption,omitempty"`
	TopK         int            `json:"top_k,omitempty"`
	RelativePath []resultRecord `json:"relative_path"`
	Error        string         `json:"error,omitempty"`
}

// AllImages fetches the full catalog.
func (c *Client) AllImages(ctx context.Context) ([]gallery.Image, error) {
	const op = "fetch catalog"
	req, err := c.newRequest(ctx, http.MethodGet, pathAllImages, nil, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	var body allImagesResponse
	if err := c.doJSON(req, op, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, remoteError(op, body.Error)
	}
	images := make([]gallery.Image, len(body.Images))
	for i, rec := range body.Images {
		images[i] = gallery.Image{Filename: rec.Filename, RelativePath: rec.RelativePath}
	}
	return images, nil
}

// SimilarImages runs a caption search returning at most topK ranked hits.
// topK is clamped to at least 1; the backend may apply its own ceiling.
func (c *Client) SimilarImages(ctx context.Context, caption string, topK int) ([]gallery.SearchResult, error) {
	const op = "search images"
	if topK < 1 {
		topK = 1
	}
	query := url.Values{}
	query.Set("caption", caption)
	query.Set("top_k", strconv.Itoa(topK))
	req, err := c.newRequest(ctx, http.MethodGet, pathSimilarImages, query, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	var body similarImagesResponse
	if err := c.doJSON(req, op, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, remoteError(op, body.Error)
	}
	results := make([]gallery.SearchResult, len(body.RelativePath))
	for i, rec := range body.RelativePath {
		results[i] = gallery.SearchResult{ImagePath: rec.ImagePath, Caption: rec.Caption}
	}
	return results, nil
}

// UploadFile is one blob of a multi-file upload.
type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromPath describes a file on disk as an upload blob.
func FileFromPath(path string) (UploadFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return UploadFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return UploadFile{}, fmt.Errorf("%s is a directory", path)
	}
	return UploadFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// TotalSize sums the declared sizes of files.
func TotalSize(files []UploadFile) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// Upload sends every file in a single multipart request, one repeated
// "files" part per blob.
func (c *Client) Upload(ctx context.Context, files []UploadFile) error {
	const op = "upload images"
	if len(files) == 0 {
		return &TransportError{Op: op, Err: ErrNoFiles}
	}
	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, files))
	}()
	req, err := c.newRequest(ctx, http.MethodPost, pathUpload, nil, pr)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.send(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var envelope struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
		return remoteError(op, envelope.Error)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeParts(mw *multipart.Writer, files []UploadFile) error {
	for _, f := range files {
		if f.Open == nil {
			return fmt.Errorf("file %s has no content", f.Name)
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, uploadField, quoteEscaper.Replace(f.Name)))
		contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Name, err)
		}
		_, err = io.Copy(part, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	return mw.Close()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if c.skipBrowserWarning {
		req.Header.Set(headerSkipBrowserWarning, "true")
	}
	req.Header.Set(headerRequestID, c.newRequestID())
	if method == http.MethodGet {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func (c *Client) send(req *http.Request, op string) (*http.Response, error) {
	id := req.Header.Get(headerRequestID)
	events.Request.Send(id, req.Method, req.URL.String())
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	events.Request.Done(id, resp.StatusCode, time.Since(start).Milliseconds())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet))),
		}
	}
	return resp, nil
}

func (c *Client) doJSON(req *http.Request, op string, out interface{}) error {
	resp, err := c.send(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
