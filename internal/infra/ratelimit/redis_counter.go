// Package ratelimit provides shared counters for the sliding-window limiters.
package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	redisCommandTimeout = 500 * time.Millisecond
	defaultKeyPrefix    = "skatehubba:ratelimit"
)

// RedisCounter implements httprate.LimitCounter on Redis so every instance
// sees the same per-window counts. Redis failures fail open: the request is
// let through and the error is logged.
type RedisCounter struct {
	client       *redis.Client
	prefix       string
	windowLength time.Duration
	logger       *slog.Logger
}

var _ httprate.LimitCounter = (*RedisCounter)(nil)

// NewRedisCounter creates a counter namespaced by name, e.g. "signup".
func NewRedisCounter(client *redis.Client, name string, logger *slog.Logger) *RedisCounter {
	return &RedisCounter{
		client: client,
		prefix: defaultKeyPrefix + ":" + name,
		logger: logger,
	}
}

func (c *RedisCounter) Config(_ int, windowLength time.Duration) {
	c.windowLength = windowLength
}

func (c *RedisCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *RedisCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisCommandTimeout)
	defer cancel()

	windowKey := c.windowKey(key, currentWindow)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, windowKey, int64(amount))
		// Two windows are read per request; keep a spare one for clock skew.
		pipe.Expire(ctx, windowKey, 3*c.windowLength)

		return nil
	})
	if err != nil {
		c.logger.Warn("Rate limit counter unavailable, allowing request", slog.Any("error", err))
	}

	return nil
}

func (c *RedisCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisCommandTimeout)
	defer cancel()

	values, err := c.client.MGet(ctx, c.windowKey(key, currentWindow), c.windowKey(key, previousWindow)).Result()
	if err != nil {
		c.logger.Warn("Rate limit counter unavailable, allowing request", slog.Any("error", err))

		return 0, 0, nil
	}

	curr, err := toCount(values[0])
	if err != nil {
		return 0, 0, err
	}
	prev, err := toCount(values[1])
	if err != nil {
		return 0, 0, err
	}

	return curr, prev, nil
}

func (c *RedisCounter) windowKey(key string, window time.Time) string {
	return c.prefix + ":" + key + ":" + strconv.FormatInt(window.Unix(), 10)
}

func toCount(v any) (int, error) {
	if v == nil {
		return 0, nil
	}

	s, ok := v.(string)
	if !ok {
		return 0, errors.Errorf("unexpected counter value %T", v)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(err, "invalid counter value")
	}

	return n, nil
}
