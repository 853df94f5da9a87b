package httpclient

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealgrid/dealgrid-go/auth"
)

// newAuthServer simulates an API that rejects everything until the access
// token is rotated through the refresh endpoint.
func newAuthServer(t *testing.T, refreshDelay time.Duration) (*httptest.Server, *int64, *int64) {
	t.Helper()
	var refreshCalls, profileCalls int64
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"refreshToken": "refresh-old"}`, string(body))
		time.Sleep(refreshDelay)
		w.Header().Set(testContentTypeHdr, testJSONType)
		_, _ = w.Write([]byte(`{"accessToken": "access-new", "refreshToken": "refresh-new"}`))
	})
	mux.HandleFunc("/profile", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt64(&profileCalls, 1)
		if r.Header.Get(testAuthHdr) != "Bearer access-new" {
			w.WriteHeader(nethttp.StatusUnauthorized)
			return
		}
		w.Header().Set(testContentTypeHdr, testJSONType)
		_, _ = w.Write([]byte(`{"data": {"name": "Ada"}}`))
	})
	return httptest.NewServer(mux), &refreshCalls, &profileCalls
}

func newAuthedClient(serverURL string, store auth.TokenStore, cfg RefreshConfig) Client {
	c := NewBuilder(createTestLogger()).
		WithBaseURL(serverURL).
		WithRetries(0, time.Millisecond).
		WithTokenSource(func(ctx context.Context) (string, error) {
			return store.Access(ctx)
		}).
		Build()
	cfg.Store = store
	c.Use(NewRefreshPlugin(c, cfg))
	return c
}

func TestRefreshRecoversFrom401(t *testing.T) {
	server, refreshCalls, _ := newAuthServer(t, 0)
	defer server.Close()

	store := auth.NewMemoryStore(auth.TokenPair{AccessToken: "access-old", RefreshToken: "refresh-old"})
	c := newAuthedClient(server.URL, store, RefreshConfig{})

	got, err := c.Get(context.Background(), "/profile", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada"}, got)
	assert.Equal(t, int64(1), atomic.LoadInt64(refreshCalls))

	// The renewed pair was persisted.
	access, err := store.Access(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-new", access)
	refresh, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-new", refresh)
}

func TestRefreshSingleFlight(t *testing.T) {
	// Three concurrent 401s must share one refresh call, and every replay
	// must carry the new token.
	server, refreshCalls, _ := newAuthServer(t, 100*time.Millisecond)
	defer server.Close()

	store := auth.NewMemoryStore(auth.TokenPair{AccessToken: "access-old", RefreshToken: "refresh-old"})
	c := newAuthedClient(server.URL, store, RefreshConfig{})

	var wg sync.WaitGroup
	results := make([]any, 3)
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), "/profile", nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 3; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, map[string]any{"name": "Ada"}, results[i])
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(refreshCalls))
}

func TestRefreshFailurePropagates(t *testing.T) {
	var refreshCalls int64
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		w.WriteHeader(nethttp.StatusForbidden)
	})
	mux.HandleFunc("/profile", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	var failures int64
	store := auth.NewMemoryStore(auth.TokenPair{AccessToken: "a", RefreshToken: "r"})
	c := newAuthedClient(server.URL, store, RefreshConfig{
		OnAuthFailure: func(error) { atomic.AddInt64(&failures, 1) },
	})

	_, err := c.Get(context.Background(), "/profile", nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, nethttp.StatusForbidden))
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))
	assert.Equal(t, int64(1), atomic.LoadInt64(&failures))
}

func TestRefreshMissingTokenFailsImmediately(t *testing.T) {
	var refreshCalls int64
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		atomic.AddInt64(&refreshCalls, 1)
	})
	mux.HandleFunc("/profile", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := auth.NewMemoryStore(auth.TokenPair{AccessToken: "a"})
	c := newAuthedClient(server.URL, store, RefreshConfig{})

	_, err := c.Get(context.Background(), "/profile", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrNoRefreshToken)
	assert.Zero(t, atomic.LoadInt64(&refreshCalls))
}

func TestRefreshEndpoint401NotRecursed(t *testing.T) {
	var refreshCalls int64
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		w.WriteHeader(nethttp.StatusUnauthorized)
	})
	mux.HandleFunc("/profile", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	var failures int64
	store := auth.NewMemoryStore(auth.TokenPair{AccessToken: "a", RefreshToken: "r"})
	c := newAuthedClient(server.URL, store, RefreshConfig{
		OnAuthFailure: func(error) { atomic.AddInt64(&failures, 1) },
	})

	_, err := c.Get(context.Background(), "/profile", nil)
	require.Error(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))
	assert.Equal(t, int64(1), atomic.LoadInt64(&failures))
}

func TestNon401ErrorsPassThrough(t *testing.T) {
	var refreshCalls int64
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(_ nethttp.ResponseWriter, _ *nethttp.Request) {
		atomic.AddInt64(&refreshCalls, 1)
	})
	mux.HandleFunc("/deals", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := auth.NewMemoryStore(auth.TokenPair{AccessToken: "a", RefreshToken: "r"})
	c := newAuthedClient(server.URL, store, RefreshConfig{})

	_, err := c.Get(context.Background(), "/deals", nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, 500))
	assert.Zero(t, atomic.LoadInt64(&refreshCalls))
}
