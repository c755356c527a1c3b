// Package http provides an HTTP-based implementation of knowdoc.Fetcher
// for retrieving pages from the local content server.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/knowdoc"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements knowdoc.Fetcher at compile time.
var _ knowdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies using plain HTTP GET requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of url as text. The body is decoded to UTF-8
// using the charset declared by the response. Transport failures and
// non-2xx responses are reported as EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", knowdoc.WrapError(knowdoc.EFETCH, err, "invalid request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", knowdoc.WrapError(knowdoc.EFETCH, err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", knowdoc.Errorf(knowdoc.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", knowdoc.WrapError(knowdoc.EFETCH, err, "unsupported encoding for %s", url)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", knowdoc.WrapError(knowdoc.EFETCH, err, "failed to read body of %s", url)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
