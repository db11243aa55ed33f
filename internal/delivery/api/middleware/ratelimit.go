package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"skatehubba/config"
	"skatehubba/internal/delivery/api/response"
	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/infra/ratelimit"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
)

// Limiter names, also used as the Redis key namespace.
const (
	LimiterGlobal = "global"
	LimiterSignup = "signup"
)

// RateLimiter builds the per-IP limiters for the API.
type RateLimiter struct {
	cfg      *config.RateLimitConfig
	counters *ratelimit.CounterFactory
	clientIP echo.IPExtractor
	logger   *slog.Logger
}

func NewRateLimiter(cfg *config.Config, counters *ratelimit.CounterFactory, logger *slog.Logger) (*RateLimiter, error) {
	clientIP, err := NewClientIPExtractor(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		cfg:      cfg.RateLimit,
		counters: counters,
		clientIP: clientIP,
		logger:   logger,
	}, nil
}

// Global limits every /api request.
func (l *RateLimiter) Global() echo.MiddlewareFunc {
	return l.limit(LimiterGlobal, l.cfg.Global)
}

// Signup limits the secure signup endpoint.
func (l *RateLimiter) Signup() echo.MiddlewareFunc {
	return l.limit(LimiterSignup, l.cfg.Signup)
}

func (l *RateLimiter) limit(name string, rule config.LimitRule) echo.MiddlewareFunc {
	opts := []httprate.Option{
		httprate.WithKeyFuncs(l.clientIPKey),
		httprate.WithLimitHandler(l.limitExceeded(name)),
	}
	if counter := l.counters.Counter(name); counter != nil {
		opts = append(opts, httprate.WithLimitCounter(counter))
	}

	return echo.WrapMiddleware(httprate.Limit(rule.Requests, rule.Window, opts...))
}

func (l *RateLimiter) limitExceeded(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliverycontext.GetLoggerOrDefault(r.Context(), l.logger).Warn("Rate limit exceeded",
			slog.String("limiter", name),
			slog.String("client_ip", l.clientIP(r)),
			slog.String("path", r.URL.Path),
		)

		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(response.ErrorResponse{
			OK:      false,
			Error:   domainerrors.ErrRateLimited.ErrorCode(),
			Message: domainerrors.ErrRateLimited.Message(),
		})
	}
}

func (l *RateLimiter) clientIPKey(r *http.Request) (string, error) {
	return l.clientIP(r), nil
}
