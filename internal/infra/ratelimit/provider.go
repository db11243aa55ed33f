package ratelimit

import (
	"log/slog"

	"skatehubba/config"

	"github.com/go-chi/httprate"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Backends accepted in rateLimit.backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// CounterFactory hands each named limiter its counter. A nil counter means
// httprate's process-local default.
type CounterFactory struct {
	client *redis.Client
	logger *slog.Logger
}

// FactoryParams holds dependencies for CounterFactory, injected by Fx.
type FactoryParams struct {
	fx.In

	Config *config.Config
	Redis  *redis.Client `optional:"true"`
	Logger *slog.Logger
}

func NewCounterFactory(params FactoryParams) (*CounterFactory, error) {
	backend := BackendMemory
	if params.Config.RateLimit != nil && params.Config.RateLimit.Backend != "" {
		backend = params.Config.RateLimit.Backend
	}

	switch backend {
	case BackendMemory:
		return &CounterFactory{logger: params.Logger}, nil
	case BackendRedis:
		if params.Redis == nil {
			return nil, errors.New("rateLimit.backend is redis but redis.addr is not configured")
		}
		params.Logger.Info("Rate limit counters shared through Redis")

		return &CounterFactory{client: params.Redis, logger: params.Logger}, nil
	default:
		return nil, errors.Errorf("unknown rate limit backend: %s", backend)
	}
}

// NewInMemoryFactory is used where no Redis is ever involved, e.g. tests.
func NewInMemoryFactory() *CounterFactory {
	return &CounterFactory{}
}

// Counter returns the counter for the limiter called name.
func (f *CounterFactory) Counter(name string) httprate.LimitCounter {
	if f == nil || f.client == nil {
		return nil
	}

	return NewRedisCounter(f.client, name, f.logger)
}

// Module provides the rate limit FX module
var Module = fx.Options(
	fx.Provide(NewCounterFactory),
)
