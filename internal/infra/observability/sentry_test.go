package observability

import (
	"io"
	"log/slog"
	"testing"

	"skatehubba/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, dsn string) SentryParams {
	cfg := &config.Config{Sentry: &config.SentryConfig{DSN: dsn}}
	cfg.Env.Env = config.EnvDevelopment

	return SentryParams{
		Lc:     fxtest.NewLifecycle(t),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewSentryHub_Disabled(t *testing.T) {
	hub, err := NewSentryHub(newParams(t, ""))

	require.NoError(t, err)
	assert.Nil(t, hub)
}

func TestNewSentryHub_Enabled(t *testing.T) {
	params := newParams(t, "https://public@sentry.example.com/1")

	hub, err := NewSentryHub(params)

	require.NoError(t, err)
	require.NotNil(t, hub)
	assert.Equal(t, config.EnvDevelopment, hub.Client().Options().Environment)
}

func TestNewSentryHub_InvalidDSN(t *testing.T) {
	_, err := NewSentryHub(newParams(t, "::not-a-dsn"))

	assert.Error(t, err)
}
