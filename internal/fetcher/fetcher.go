// Package fetcher retrieves response headers over HTTP.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"golang.org/x/time/rate"
)

// FetchError reports a failed probe of one URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options controls how URLs are probed.
type Options struct {
	Method     string
	Timeout    time.Duration
	UserAgents []string
	// MinDelay and MaxDelay bound the random pause taken before each
	// request. Both zero disables the pause.
	MinDelay time.Duration
	MaxDelay time.Duration
	// RateLimit caps requests per second across all goroutines sharing
	// the fetcher. Zero means unlimited.
	RateLimit float64
}

// DefaultOptions returns the probe settings used by the CLI.
func DefaultOptions() Options {
	return Options{
		Method:     http.MethodHead,
		Timeout:    10 * time.Second,
		UserAgents: DefaultUserAgents,
		MinDelay:   time.Second,
		MaxDelay:   5 * time.Second,
	}
}

// HTTPFetcher probes URLs and returns their response headers. It is safe
// for concurrent use.
type HTTPFetcher struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Method == "" {
		opts.Method = http.MethodHead
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}

	f := &HTTPFetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return f
}

// Fetch requests url and returns its headers. Any failure is returned as
// a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (types.HeaderSet, error) {
	if err := f.pause(ctx); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, f.opts.Method, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	if ua := f.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("HTTP %s: %w", f.opts.Method, err)}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	return types.HeaderSetFromHTTP(resp.Header), nil
}

// pause sleeps for a random duration in [MinDelay, MaxDelay].
func (f *HTTPFetcher) pause(ctx context.Context) error {
	d := f.opts.MinDelay
	if spread := f.opts.MaxDelay - f.opts.MinDelay; spread > 0 {
		d += rand.N(spread)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *HTTPFetcher) userAgent() string {
	if len(f.opts.UserAgents) == 0 {
		return ""
	}
	return f.opts.UserAgents[rand.IntN(len(f.opts.UserAgents))]
}
