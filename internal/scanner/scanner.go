package scanner

import (
	"context"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// Fetcher resolves the response headers of one URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (types.HeaderSet, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (types.HeaderSet, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (types.HeaderSet, error) {
	return f(ctx, url)
}

// Options holds scan-wide execution parameters.
type Options struct {
	Concurrency int
	// OnURLDone, when set, is called once per dispatched URL after it has
	// been fetched and analyzed. err is the fetch error, if any.
	OnURLDone func(url string, findings []types.Finding, err error)
}
