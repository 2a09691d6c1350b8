package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

func newRateLimitedServer(store middleware.RateLimitStore, limit int) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Store:  store,
		Limit:  limit,
		Window: time.Minute,
	}))
	e.GET("/resource", okHandler)
	return e
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	e := newRateLimitedServer(middleware.NewMemoryRateLimitStore(), 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	e := newRateLimitedServer(middleware.NewMemoryRateLimitStore(), 2)

	var last *httptest.ResponseRecorder
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		last = httptest.NewRecorder()
		e.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "RATE_LIMIT_EXCEEDED")
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestRateLimit_SetsHeaders(t *testing.T) {
	e := newRateLimitedServer(middleware.NewMemoryRateLimitStore(), 10)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "10", rec.Header().Get("X-Ratelimit-Limit"))
	assert.Equal(t, "9", rec.Header().Get("X-Ratelimit-Remaining"))
}

func TestRateLimit_SkipPaths(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Store:     middleware.NewMemoryRateLimitStore(),
		Limit:     1,
		Window:    time.Minute,
		SkipPaths: []string{"/health"},
	}))
	e.GET("/health", okHandler)

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_NoStoreDisablesLimiting(t *testing.T) {
	e := newRateLimitedServer(nil, 1)

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRedisRateLimitStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := middleware.NewRedisRateLimitStore(client, "")
	ctx := context.Background()

	count, err := store.Increment(ctx, "ip:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Increment(ctx, "ip:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	ttl, err := store.GetTTL(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// The window resets once the key expires.
	mr.FastForward(2 * time.Minute)

	count, err = store.Increment(ctx, "ip:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
