package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDelay() Options {
	opts := DefaultOptions()
	opts.MinDelay = 0
	opts.MaxDelay = 0
	opts.Timeout = 2 * time.Second
	return opts
}

func TestFetch_ReturnsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Server", "nginx/1.18.0")
		w.Header().Add("Set-Cookie", "a=1")
		w.Header().Add("Set-Cookie", "b=2; HttpOnly")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := New(noDelay())
	headers, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	v, ok := headers.Get("Server")
	assert.True(t, ok)
	assert.Equal(t, "nginx/1.18.0", v)

	var cookies []string
	for _, h := range headers {
		if h.Name == "Set-Cookie" {
			cookies = append(cookies, h.Value)
		}
	}
	assert.Equal(t, []string{"a=1", "b=2; HttpOnly"}, cookies)
}

func TestFetch_RotatesUserAgent(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.UserAgent())
	}))
	defer srv.Close()

	f := New(noDelay())
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, DefaultUserAgents, got.Load())
}

func TestFetch_GETMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("X-Powered-By", "Express")
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	opts := noDelay()
	opts.Method = http.MethodGet
	headers, err := New(opts).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	v, _ := headers.Get("X-Powered-By")
	assert.Equal(t, "Express", v)
}

func TestFetch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(noDelay()).Fetch(context.Background(), url)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, url, fe.URL)
	assert.Contains(t, err.Error(), url)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New(noDelay()).Fetch(context.Background(), "://bad")
	var fe *FetchError
	assert.ErrorAs(t, err, &fe)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	opts := noDelay()
	opts.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := New(opts).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_DelayHonorsContext(t *testing.T) {
	opts := noDelay()
	opts.MinDelay = 5 * time.Second
	opts.MaxDelay = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(opts).Fetch(ctx, "http://127.0.0.1:1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_RateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	opts := noDelay()
	opts.RateLimit = 10
	f := New(opts)

	start := time.Now()
	for i := 0; i < 12; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(12), hits.Load())
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestNew_Defaults(t *testing.T) {
	f := New(Options{MinDelay: time.Second})
	assert.Equal(t, http.MethodHead, f.opts.Method)
	assert.Equal(t, 10*time.Second, f.opts.Timeout)
	assert.Equal(t, time.Second, f.opts.MaxDelay)
	assert.Nil(t, f.limiter)
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &FetchError{URL: "https://example.com", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "https://example.com: boom", err.Error())
}

var _ interface {
	Fetch(context.Context, string) (types.HeaderSet, error)
} = (*HTTPFetcher)(nil)
