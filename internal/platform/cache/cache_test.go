package cache

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok, err := c.Get(ctx, "provinces:/provinces/all?")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "provinces:/provinces/all?", []byte(`{"success":true}`), time.Minute))
	value, ok, err := c.Get(ctx, "provinces:/provinces/all?")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"success":true}`, string(value))

	require.NoError(t, c.Set(ctx, "schools:/schools/all?", []byte("x"), time.Minute))
	require.NoError(t, c.DeletePrefix(ctx, "provinces:"))

	_, ok, _ = c.Get(ctx, "provinces:/provinces/all?")
	assert.False(t, ok, "prefix delete should drop province entries")
	_, ok, _ = c.Get(ctx, "schools:/schools/all?")
	assert.True(t, ok, "prefix delete must not touch other entities")
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expired entries must not be served")
}

func TestResponseCacheMiddleware(t *testing.T) {
	rc := NewResponseCache(NewMemory(), time.Minute, false, discardLogger(), nil)

	calls := 0
	handler := rc.Middleware("provinces")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/provinces/all?page=1", nil))
		return w
	}

	first := get()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, calls)

	second := get()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls, "second request should be served from cache")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	rc.Invalidate(context.Background(), "provinces")
	get()
	assert.Equal(t, 2, calls, "invalidation should force a fresh handler call")
}

func TestResponseCacheSkipsFailures(t *testing.T) {
	rc := NewResponseCache(NewMemory(), time.Minute, false, discardLogger(), nil)

	calls := 0
	handler := rc.Middleware("provinces")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/provinces/99", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	assert.Equal(t, 2, calls, "non-200 responses must not be cached")
}

func TestResponseCacheKeySeparatesBackends(t *testing.T) {
	store := NewMemory()
	jsonRC := NewResponseCache(store, time.Minute, false, discardLogger(), nil)
	dbRC := NewResponseCache(store, time.Minute, true, discardLogger(), nil)

	r := httptest.NewRequest("GET", "/provinces/all", nil)
	assert.NotEqual(t, jsonRC.key("provinces", r), dbRC.key("provinces", r))
}
