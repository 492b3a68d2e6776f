// Package http fetches menu resources over plain HTTP and discovers
// candidate menu URLs from site sitemaps. It does not execute JavaScript;
// sites that render menus client-side use the rod loader instead.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jwalczak/menuscan"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Loader implements menuscan.ResourceLoader at compile time.
var _ menuscan.ResourceLoader = (*Loader)(nil)

// Loader retrieves resources over HTTP, retrying transient failures with
// exponential backoff.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithRetryDelays sets the backoff delays between retry attempts. Useful
// for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(l *Loader) {
		l.delays = delays
	}
}

// NewLoader creates a new HTTP-based Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout: DefaultFetchTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// Load fetches the URL into a Resource, retrying throttled and server
// errors. The resource carries the declared Content-Type; callers sniff
// the effective type from the body.
func (l *Loader) Load(ctx context.Context, url string) (*menuscan.Resource, error) {
	maxAttempts := len(l.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, retryAgain, err := l.fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryAgain {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.delays[attempt]):
		}
	}
	return nil, lastErr
}

func (l *Loader) fetch(ctx context.Context, url string) (*menuscan.Resource, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, menuscan.Errorf(menuscan.EINVALID, "http: %s", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, menuscan.Errorf(menuscan.EUNAVAILABLE, "http: fetch %s: %s", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retryAgain := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryAgain, menuscan.Errorf(menuscan.EUNAVAILABLE, "http: %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, menuscan.Errorf(menuscan.EUNAVAILABLE, "http: read %s: %s", url, err)
	}

	return &menuscan.Resource{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, false, nil
}
