
package crawler

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// HTTPFetcher retrieves static markup without a browser. Scripted content is
// not rendered, so it is only used when the fetch engine is set to "http".
type HTTPFetcher struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
}

func NewHTTPFetcher(timeout, dialTimeout time.Duration, sizeCap int64, userAgent string) *HTTPFetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap:   sizeCap,
		userAgent: userAgent,
	}
}

// Fetch returns the UTF-8 decoded markup of rawURL.
func (h *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target := NormalizeURL(rawURL)
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "", fetchErr(KindUnexpected, target, fmt.Errorf("invalid url"))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fetchErr(KindUnexpected, target, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", httpErr(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fetchErr(KindUnexpected, target, fmt.Errorf("http status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		return "", fetchErr(KindUnexpected, target, errors.New("non-html content"))
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fetchErr(KindUnexpected, target, err)
		}
		defer gz.Close()
		body = gz
	}

	decoded, err := charset.NewReader(io.LimitReader(body, h.sizeCap), contentType)
	if err != nil {
		return "", fetchErr(KindUnexpected, target, err)
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", httpErr(target, err)
	}
	return string(data), nil
}

func httpErr(url string, err error) *FetchError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fetchErr(KindTimeout, url, err)
	}
	return fetchErr(KindUnexpected, url, err)
}
