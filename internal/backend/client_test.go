package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, fake *testutil.FakeBackend, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(fake.URL, opts...)
	require.NoError(t, err)
	return c
}

func memFile(name, body string) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(body)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}

func TestParseBaseURL(t *testing.T) {
	u, err := ParseBaseURL(" https://abc.ngrok.app/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://abc.ngrok.app", u.String())

	for _, raw := range []string{"", "ftp://host", "localhost:8000", "http://"} {
		_, err := ParseBaseURL(raw)
		assert.Error(t, err, raw)
	}
}

func TestAllImagesDecodesCatalog(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.SetImages(
		gallery.Image{Filename: "a.jpg", RelativePath: fake.ImageURL("a.jpg")},
		gallery.Image{Filename: "b.jpg", RelativePath: fake.ImageURL("b.jpg")},
	)
	images, err := newTestClient(t, fake).AllImages(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, gallery.Image{Filename: "a.jpg", RelativePath: fake.ImageURL("a.jpg")}, images[0])

	reqs := fake.RequestsTo(testutil.PathAllImages)
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "true", reqs[0].Header.Get("ngrok-skip-browser-warning"))
	assert.NotEmpty(t, reqs[0].Header.Get("X-Request-ID"))
}

func TestAllImagesEmptyCatalog(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	images, err := newTestClient(t, fake).AllImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestBrowserWarningHeaderCanBeDisabled(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	_, err := newTestClient(t, fake, WithBrowserWarningSkipped(false)).AllImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fake.RequestsTo(testutil.PathAllImages)[0].Header.Get("ngrok-skip-browser-warning"))
}

func TestSimilarImagesSendsCaptionAndTopK(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.SetResults("sunset over sea",
		gallery.SearchResult{ImagePath: fake.ImageURL("z.jpg"), Caption: "orange sky"},
		gallery.SearchResult{ImagePath: fake.ImageURL("a.jpg"), Caption: "beach at dusk"},
	)
	results, err := newTestClient(t, fake).SimilarImages(context.Background(), "sunset over sea", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "orange sky", results[0].Caption)
	assert.Equal(t, "beach at dusk", results[1].Caption)

	reqs := fake.RequestsTo(testutil.PathSimilarImages)
	require.Len(t, reqs, 1)
	assert.Equal(t, "sunset over sea", reqs[0].Query.Get("caption"))
	assert.Equal(t, "3", reqs[0].Query.Get("top_k"))
}

func TestSimilarImagesClampsLimit(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	_, err := newTestClient(t, fake).SimilarImages(context.Background(), "x", 0)
	require.NoError(t, err)
	assert.Equal(t, "1", fake.RequestsTo(testutil.PathSimilarImages)[0].Query.Get("top_k"))
}

func TestStatusFailureIsTransportError(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.FailWith(testutil.PathSimilarImages, http.StatusBadGateway)
	_, err := newTestClient(t, fake).SimilarImages(context.Background(), "x", 2)
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.False(t, IsRemote(err))
}

func TestErrorEnvelopeIsRemoteError(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.RemoteError(testutil.PathAllImages, "Gallery folder 'gallery' not found")
	_, err := newTestClient(t, fake).AllImages(context.Background())
	require.Error(t, err)
	assert.True(t, IsRemote(err))
	assert.Contains(t, err.Error(), "Gallery folder")
}

func TestUndecodableBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>interstitial</html>"))
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	_, err = c.AllImages(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Error(), "decode response")
}

func TestTimeoutSurfacesAsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)
	c, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	_, err = c.AllImages(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.Status)
}

func TestUploadSendsRepeatedFilesField(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	err := newTestClient(t, fake).Upload(context.Background(), []UploadFile{
		memFile("one.jpg", "first"),
		memFile("two.png", "second"),
	})
	require.NoError(t, err)

	reqs := fake.RequestsTo(testutil.PathUpload)
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "true", reqs[0].Header.Get("ngrok-skip-browser-warning"))
	require.Len(t, reqs[0].Files, 2)
	assert.Equal(t, "one.jpg", reqs[0].Files[0].Name)
	assert.Equal(t, "first", string(reqs[0].Files[0].Data))
	assert.Equal(t, "image/jpeg", reqs[0].Files[0].ContentType)
	assert.Equal(t, "two.png", reqs[0].Files[1].Name)
}

func TestUploadWithoutFilesFailsFast(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	err := newTestClient(t, fake).Upload(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFiles)
	assert.Empty(t, fake.Requests())
}

func TestUploadFailureStatus(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.FailWith(testutil.PathUpload, http.StatusInternalServerError)
	err := newTestClient(t, fake).Upload(context.Background(), []UploadFile{memFile("a.jpg", "x")})
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestUploadOpenFailureAbortsRequest(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	broken := UploadFile{Name: "gone.jpg", Open: func() (io.ReadCloser, error) { return nil, errors.New("vanished") }}
	err := newTestClient(t, fake).Upload(context.Background(), []UploadFile{broken})
	require.Error(t, err)
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	_, err := FileFromPath(dir)
	assert.Error(t, err)
	_, err = FileFromPath(dir + "/missing.jpg")
	assert.Error(t, err)
}

func TestTotalSize(t *testing.T) {
	assert.Equal(t, int64(11), TotalSize([]UploadFile{memFile("a", "first"), memFile("b", "second")}))
}
