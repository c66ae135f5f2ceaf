// Package fetch implements the Fetcher interface.
// HTTPFetcher performs GET requests with scraping-friendly defaults and
// FileLoader reads markup from disk. Both return UTF-8 markup.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tenqz/tagparser/core"
)

const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when no other User-Agent is configured.
	DefaultUserAgent = "tagparser/1.0 (https://github.com/tenqz/tagparser)"
	// DefaultMaxBodySize caps how much of a response body is accepted.
	DefaultMaxBodySize = 10 * 1024 * 1024
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrBodyTooLarge is returned when a response exceeds MaxBodySize. Bodies
	// are never truncated.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Options configures an HTTPFetcher. Zero values select the defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client

	// MaxBodySize is the largest body accepted, in bytes.
	MaxBodySize int64
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPFetcher{client: client, userAgent: opts.UserAgent, maxBodySize: opts.MaxBodySize}
}

// Fetch retrieves the markup at url, decoded to UTF-8.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("fetched")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d for %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, url, f.maxBodySize)
	}

	return &core.FetchResult{
		Source:     url,
		StatusCode: resp.StatusCode,
		HTML:       Decode(body, resp.Header.Get("Content-Type")),
	}, nil
}
