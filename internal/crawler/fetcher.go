package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// Fetcher retrieves one page body as decoded text.
//
// Design decision: The engine consumes this single-method interface
// rather than *http.Client directly because:
//  1. Tests can swap in fixture fetchers without a network.
//  2. The engine's contract is "URL in, decoded text or error out";
//     transport details (headers, proxies, body limits) stay out of
//     the scheduling code.
type Fetcher interface {
	// Fetch performs one GET of url and returns the response body
	// decoded to UTF-8 text. Any transport or decoding failure is an
	// error; the engine treats every error as fatal to the whole job.
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is the production Fetcher over net/http.
type HTTPFetcher struct {
	// client performs the requests. Timeouts are the client's concern.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how many body bytes are read per page.
	maxBodySize int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// NewHTTPFetcher creates an HTTPFetcher using the given client.
// A nil client falls back to http.DefaultClient.
//
// Design decision: We take the client from the caller because request
// timeouts and transport tuning belong to the entrypoint configuration,
// and tests want to point the fetcher at httptest servers.
func NewHTTPFetcher(client *http.Client, opts ...FetcherOption) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &HTTPFetcher{
		client:      client,
		userAgent:   "pagesift/1.0 (+https://github.com/pagesift/pagesift)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs one GET and returns the body as UTF-8 text.
//
// Non-2xx responses are not errors: an error page still carries markup
// worth mining. Only transport failures, body read failures, and
// undecodable bodies are fatal, and all of them wrap ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request for %s: %w", ErrFetch, pageURL, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %w", ErrFetch, pageURL, err)
	}
	defer resp.Body.Close()

	// Decode to UTF-8 based on the Content-Type charset (and, failing
	// that, content sniffing). Bodies the decoder cannot handle are a
	// decoding failure, which is fatal to the job.
	limited := io.LimitReader(resp.Body, f.maxBodySize)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %w", ErrFetch, pageURL, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrFetch, pageURL, err)
	}

	return string(body), nil
}
