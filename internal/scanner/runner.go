// Package scanner fans a URL list out over a Fetcher and collects the
// analyzer's findings per URL.
package scanner

import (
	"context"
	"sync"

	"github.com/CypherHippie/HeaderHunter/internal/analyzer"
	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"go.uber.org/zap"
)

// Runner orchestrates concurrent URL scanning.
type Runner struct {
	fetcher    Fetcher
	aggregator *analyzer.Aggregator
	logger     *zap.SugaredLogger
}

// NewRunner creates a runner. Fetch failures are logged to logger; a nil
// logger discards them.
func NewRunner(fetcher Fetcher, aggregator *analyzer.Aggregator, logger *zap.SugaredLogger) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{fetcher: fetcher, aggregator: aggregator, logger: logger}
}

// Aggregator returns the aggregator findings are produced with.
func (r *Runner) Aggregator() *analyzer.Aggregator {
	return r.aggregator
}

// ScanOne fetches a single URL and returns its findings.
func (r *Runner) ScanOne(ctx context.Context, url string) ([]types.Finding, error) {
	headers, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return r.aggregator.ScanOne(headers), nil
}

// Scan probes urls concurrently, bounded by opts.Concurrency. URLs whose
// fetch fails, or that yield no findings, are absent from the result.
// Repeated URLs are scanned once. Once ctx is done no further URLs are
// dispatched.
func (r *Runner) Scan(ctx context.Context, urls []string, opts Options) types.ScanResult {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make(types.ScanResult)
	dispatched := make(map[string]struct{}, len(urls))

dispatch:
	for _, url := range urls {
		if _, dup := dispatched[url]; dup {
			continue
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			r.logger.Warnw("scan cancelled", "dispatched", len(dispatched), "error", ctx.Err())
			break dispatch
		}
		dispatched[url] = struct{}{}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer func() { <-sem }()

			findings, err := r.ScanOne(ctx, url)
			if err != nil {
				r.logger.Warnw("fetch failed", "url", url, "error", err)
			} else {
				r.logger.Debugw("scanned", "url", url, "findings", len(findings))
			}

			if opts.OnURLDone != nil {
				opts.OnURLDone(url, findings, err)
			}

			if len(findings) == 0 {
				return
			}
			mu.Lock()
			results[url] = findings
			mu.Unlock()
		}(url)
	}

	wg.Wait()
	return results
}
