// Package observability wires error reporting.
package observability

import (
	"context"
	"log/slog"

	"skatehubba/config"
	"skatehubba/internal/domain/lifecycle"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SentryParams holds dependencies for the Sentry hub, injected by Fx.
type SentryParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewSentryHub returns nil when sentry.dsn is empty; callers treat a nil hub
// as reporting disabled.
func NewSentryHub(params SentryParams) (*sentry.Hub, error) {
	cfg := params.Config.Sentry
	if cfg == nil || cfg.DSN == "" {
		params.Logger.Info("Sentry DSN not set, error reporting disabled")

		return nil, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: params.Config.Env.Env,
		ServerName:  params.Config.Env.ServiceName,
		SampleRate:  sampleRate,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to init sentry")
	}

	hub := sentry.NewHub(client, sentry.NewScope())

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if !hub.Flush(lifecycle.DefaultTimeout) {
				params.Logger.Warn("Sentry flush timed out")
			}

			return nil
		},
	})

	params.Logger.Info("Sentry error reporting enabled", slog.String("environment", params.Config.Env.Env))

	return hub, nil
}

// Module provides the observability FX module
var Module = fx.Options(
	fx.Provide(NewSentryHub),
)
