package ratelimit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skatehubba/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCounter(t *testing.T) (*RedisCounter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	counter := NewRedisCounter(client, "signup", discardLogger())
	counter.Config(5, 15*time.Minute)

	return counter, mr
}

func TestRedisCounter_IncrementAndGet(t *testing.T) {
	counter, mr := newTestCounter(t)
	current := time.Unix(1_700_000_000, 0).Truncate(15 * time.Minute)
	previous := current.Add(-15 * time.Minute)

	require.NoError(t, counter.Increment("203.0.113.7", current))
	require.NoError(t, counter.IncrementBy("203.0.113.7", current, 2))
	require.NoError(t, counter.Increment("203.0.113.7", previous))

	curr, prev, err := counter.Get("203.0.113.7", current, previous)
	require.NoError(t, err)
	assert.Equal(t, 3, curr)
	assert.Equal(t, 1, prev)

	key := counter.windowKey("203.0.113.7", current)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 45*time.Minute, mr.TTL(key))

	curr, prev, err = counter.Get("198.51.100.1", current, previous)
	require.NoError(t, err)
	assert.Zero(t, curr)
	assert.Zero(t, prev)
}

func TestRedisCounter_FailsOpen(t *testing.T) {
	counter, mr := newTestCounter(t)
	mr.Close()

	now := time.Now()
	assert.NoError(t, counter.Increment("k", now))

	curr, prev, err := counter.Get("k", now, now.Add(-time.Minute))
	assert.NoError(t, err)
	assert.Zero(t, curr)
	assert.Zero(t, prev)
}

func TestRedisCounter_SharedAcrossLimiters(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	newHandler := func() http.Handler {
		limiter := httprate.Limit(2, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitCounter(NewRedisCounter(client, "shared", discardLogger())),
		)

		return limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}
	// Two instances share one budget.
	instances := []http.Handler{newHandler(), newHandler()}

	codes := make([]int, 0, 3)
	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		instances[i%2].ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewCounterFactory(t *testing.T) {
	mem, err := NewCounterFactory(FactoryParams{Config: &config.Config{}, Logger: discardLogger()})
	require.NoError(t, err)
	assert.Nil(t, mem.Counter("global"))

	_, err = NewCounterFactory(FactoryParams{
		Config: &config.Config{RateLimit: &config.RateLimitConfig{Backend: BackendRedis}},
		Logger: discardLogger(),
	})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	shared, err := NewCounterFactory(FactoryParams{
		Config: &config.Config{RateLimit: &config.RateLimitConfig{Backend: BackendRedis}},
		Redis:  client,
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &RedisCounter{}, shared.Counter("signup"))

	_, err = NewCounterFactory(FactoryParams{
		Config: &config.Config{RateLimit: &config.RateLimitConfig{Backend: "memcached"}},
		Logger: discardLogger(),
	})
	assert.Error(t, err)
}
