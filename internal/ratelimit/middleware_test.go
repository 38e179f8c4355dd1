package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareEnforcesLimit(t *testing.T) {
	h := New(memory.NewStore(), 1, time.Minute, Config{Key: func(*http.Request) string { return "static" }})
	counted := h.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/book", nil)
	rr1 := httptest.NewRecorder()
	counted.ServeHTTP(rr1, req)
	require.Equal(t, http.StatusOK, rr1.Code)
	require.Equal(t, "1", rr1.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rr1.Header().Get("X-RateLimit-Remaining"))

	rr2 := httptest.NewRecorder()
	counted.ServeHTTP(rr2, req)
	require.Equal(t, http.StatusTooManyRequests, rr2.Code)
	require.NotEmpty(t, rr2.Header().Get("Retry-After"))
	require.Contains(t, rr2.Body.String(), "RATE_LIMITED")
}

func TestMiddlewareKeysByClientIP(t *testing.T) {
	h := New(memory.NewStore(), 1, time.Minute, Config{})
	counted := h.Middleware(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/", nil)
	first.RemoteAddr = "10.0.0.1:5000"
	second := httptest.NewRequest(http.MethodPost, "/", nil)
	second.RemoteAddr = "10.0.0.2:5000"

	for _, req := range []*http.Request{first, second} {
		rr := httptest.NewRecorder()
		counted.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := httptest.NewRecorder()
	counted.ServeHTTP(rr, first)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestMiddlewareRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "test"})
	require.NoError(t, err)
	counted := New(store, 2, time.Minute, Config{Prefix: "pricing:"}).Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		counted.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		codes = append(codes, rr.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

type failingStore struct{ limiter.Store }

func (failingStore) Get(context.Context, string, limiter.Rate) (limiter.Context, error) {
	return limiter.Context{}, errors.New("store down")
}

func TestMiddlewareFailsOpen(t *testing.T) {
	var seen error
	h := New(failingStore{}, 1, time.Minute, Config{})
	h.OnError = func(err error) { seen = err }

	rr := httptest.NewRecorder()
	h.Middleware(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.EqualError(t, seen, "store down")
}
