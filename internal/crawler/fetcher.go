
package crawler

import (
	"context"
	"errors"
	"strings"
	"time"

	"site-classifier/pkg/logger"
)

// Session is one isolated browser session, owned by a single fetch.
type Session interface {
	Navigate(ctx context.Context, url string) error
	// WaitReady blocks until selector is present in the document.
	WaitReady(ctx context.Context, selector string) error
	ScrollHeight(ctx context.Context) (int, error)
	ScrollToBottom(ctx context.Context) error
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Launcher opens fresh sessions.
type Launcher interface {
	Open(ctx context.Context) (Session, error)
}

// FetchConfig holds the fixed timings of the fetch protocol.
type FetchConfig struct {
	ReadyTimeout  time.Duration
	ReadySelector string
	ScrollSettle  time.Duration
	MaxScrolls    int
}

// DefaultFetchConfig returns the production timings.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		ReadyTimeout:  15 * time.Second,
		ReadySelector: "body",
		ScrollSettle:  2 * time.Second,
		MaxScrolls:    3,
	}
}

// BrowserFetcher renders pages in a browser session and returns their markup.
type BrowserFetcher struct {
	launcher Launcher
	cfg      FetchConfig
	log      logger.Logger
}

func NewBrowserFetcher(l Launcher, cfg FetchConfig, log logger.Logger) *BrowserFetcher {
	if cfg.ReadySelector == "" {
		cfg.ReadySelector = "body"
	}
	return &BrowserFetcher{launcher: l, cfg: cfg, log: log}
}

// NormalizeURL prefixes https:// unless the URL already carries an http(s) scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// Fetch loads rawURL, waits for readiness, scrolls to materialize lazy
// content and returns the rendered markup. Failures are *FetchError values.
func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (markup string, err error) {
	url := NormalizeURL(rawURL)

	sess, err := f.launcher.Open(ctx)
	if err != nil {
		return "", fetchErr(KindSession, url, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			f.log.Warn("close browser session", logger.String("url", url), logger.Error(cerr))
		}
	}()

	readyCtx, cancel := context.WithTimeout(ctx, f.cfg.ReadyTimeout)
	defer cancel()

	if err := sess.Navigate(readyCtx, url); err != nil {
		return "", classify(url, err)
	}
	if err := sess.WaitReady(readyCtx, f.cfg.ReadySelector); err != nil {
		return "", classify(url, err)
	}

	if passes, err := f.materialize(ctx, sess); err != nil {
		f.log.Warn("error while scrolling", logger.String("url", url), logger.Int("passes", passes), logger.Error(err))
	}

	markup, err = sess.HTML(ctx)
	if err != nil {
		return "", classify(url, err)
	}
	return markup, nil
}

// materialize scrolls to the bottom until the document height stops growing
// or MaxScrolls passes have run. It returns the number of passes made.
func (f *BrowserFetcher) materialize(ctx context.Context, sess Session) (int, error) {
	last, err := sess.ScrollHeight(ctx)
	if err != nil {
		return 0, err
	}

	passes := 0
	for passes < f.cfg.MaxScrolls {
		if err := sess.ScrollToBottom(ctx); err != nil {
			return passes, err
		}
		passes++
		if err := sleep(ctx, f.cfg.ScrollSettle); err != nil {
			return passes, err
		}

		height, err := sess.ScrollHeight(ctx)
		if err != nil {
			return passes, err
		}
		if height == last {
			break
		}
		last = height
	}
	return passes, nil
}

func classify(url string, err error) *FetchError {
	switch {
	case errors.Is(err, ErrSession):
		return fetchErr(KindSession, url, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fetchErr(KindTimeout, url, err)
	default:
		return fetchErr(KindUnexpected, url, err)
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
