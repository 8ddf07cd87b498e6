
package crawler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-classifier/pkg/logger"
)

type fakeSession struct {
	heights     []int
	heightCalls int
	heightErr   error
	scrollErr   error
	navigateErr error
	readyErr    error
	blockReady  bool
	html        string
	htmlErr     error

	navigated string
	scrolls   int
	closed    bool
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.navigated = url
	return s.navigateErr
}

func (s *fakeSession) WaitReady(ctx context.Context, selector string) error {
	if s.blockReady {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.readyErr
}

func (s *fakeSession) ScrollHeight(ctx context.Context) (int, error) {
	if s.heightErr != nil {
		return 0, s.heightErr
	}
	if len(s.heights) == 0 {
		return 0, nil
	}
	i := s.heightCalls
	if i >= len(s.heights) {
		i = len(s.heights) - 1
	}
	s.heightCalls++
	return s.heights[i], nil
}

func (s *fakeSession) ScrollToBottom(ctx context.Context) error {
	s.scrolls++
	return s.scrollErr
}

func (s *fakeSession) HTML(ctx context.Context) (string, error) {
	return s.html, s.htmlErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeLauncher struct {
	sess   *fakeSession
	err    error
	opened int
}

func (l *fakeLauncher) Open(ctx context.Context) (Session, error) {
	l.opened++
	if l.err != nil {
		return nil, l.err
	}
	return l.sess, nil
}

func testConfig() FetchConfig {
	return FetchConfig{
		ReadyTimeout:  50 * time.Millisecond,
		ReadySelector: "body",
		ScrollSettle:  0,
		MaxScrolls:    3,
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"example.com":             "https://example.com",
		"www.nestle.com":          "https://www.nestle.com",
		"http://example.com":      "http://example.com",
		"https://example.com/x":   "https://example.com/x",
		"  spaced.example.com  ":  "https://spaced.example.com",
		"ftp.example.com/catalog": "https://ftp.example.com/catalog",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeURL(in), in)
	}
}

func TestFetchSuccessConvergesAndCloses(t *testing.T) {
	sess := &fakeSession{heights: []int{100, 200, 200}, html: "<html><body><p>ok</p></body></html>"}
	f := NewBrowserFetcher(&fakeLauncher{sess: sess}, testConfig(), logger.NewNop())

	markup, err := f.Fetch(context.Background(), "example.com")

	require.NoError(t, err)
	assert.Equal(t, sess.html, markup)
	assert.Equal(t, "https://example.com", sess.navigated)
	assert.Equal(t, 2, sess.scrolls)
	assert.True(t, sess.closed)
}

func TestMaterializeStopsAtMaxScrolls(t *testing.T) {
	sess := &fakeSession{heights: []int{1, 2, 3, 4, 5, 6}}
	f := NewBrowserFetcher(&fakeLauncher{sess: sess}, testConfig(), logger.NewNop())

	passes, err := f.materialize(context.Background(), sess)

	require.NoError(t, err)
	assert.Equal(t, 3, passes)
	assert.Equal(t, 3, sess.scrolls)
}

func TestScrollFailureIsNotFatal(t *testing.T) {
	sess := &fakeSession{heights: []int{100}, scrollErr: errors.New("script blocked"), html: "<p>partial</p>"}
	f := NewBrowserFetcher(&fakeLauncher{sess: sess}, testConfig(), logger.NewNop())

	markup, err := f.Fetch(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "<p>partial</p>", markup)
	assert.True(t, sess.closed)
}

func TestFetchReadinessTimeout(t *testing.T) {
	sess := &fakeSession{blockReady: true}
	f := NewBrowserFetcher(&fakeLauncher{sess: sess}, testConfig(), logger.NewNop())

	_, err := f.Fetch(context.Background(), "slow.example.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Equal(t, KindTimeout, KindOf(err))
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "https://slow.example.com", fe.URL)
	assert.True(t, sess.closed, "session must be released on failure")
}

func TestFetchSessionErrors(t *testing.T) {
	f := NewBrowserFetcher(&fakeLauncher{err: errors.New("chrome crashed")}, testConfig(), logger.NewNop())
	_, err := f.Fetch(context.Background(), "example.com")
	assert.True(t, errors.Is(err, ErrSession))
	assert.False(t, errors.Is(err, ErrTimeout))

	lost := &fakeSession{html: "", htmlErr: sessionErr(io.EOF)}
	f = NewBrowserFetcher(&fakeLauncher{sess: lost}, testConfig(), logger.NewNop())
	_, err = f.Fetch(context.Background(), "example.com")
	assert.Equal(t, KindSession, KindOf(err))
	assert.True(t, lost.closed)
}

func TestFetchUnexpectedError(t *testing.T) {
	sess := &fakeSession{navigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	f := NewBrowserFetcher(&fakeLauncher{sess: sess}, testConfig(), logger.NewNop())

	_, err := f.Fetch(context.Background(), "nowhere.invalid")

	assert.True(t, errors.Is(err, ErrUnexpected))
	assert.Contains(t, err.Error(), "ERR_NAME_NOT_RESOLVED")
	assert.True(t, sess.closed)
}

func TestCheckBrowserMissingBinary(t *testing.T) {
	_, err := CheckBrowser("/definitely/not/here/chrome")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSetup))
	assert.Contains(t, err.Error(), "Install Google Chrome")
}

func TestRemoveProfileAfterFailedLaunch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Default"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Default", "Preferences"), []byte("{}"), 0o600))

	removeProfile(launcher.New().UserDataDir(dir))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestHTTPFetcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{}"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>late</p>"))
		default:
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>Dairy</p></body></html>"))
		}
	}))
	defer ts.Close()

	f := NewHTTPFetcher(100*time.Millisecond, 50*time.Millisecond, 1024, "")

	markup, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, markup, "<p>Dairy</p>")

	_, err = f.Fetch(context.Background(), ts.URL+"/json")
	assert.True(t, errors.Is(err, ErrUnexpected))

	_, err = f.Fetch(context.Background(), ts.URL+"/slow")
	assert.True(t, errors.Is(err, ErrTimeout))
}
