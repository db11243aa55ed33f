package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLegacyEnv(t *testing.T) {
	env := map[string]string{
		"NODE_ENV":                 "production",
		"PORT":                     "8080",
		"APP_JWT_SECRET":           "shh",
		"DATABASE_URL":             "postgres://u:p@localhost:5432/hubba",
		"VITE_FIREBASE_PROJECT_ID": "skatehubba-prod",
		"SENTRY_DSN":               "https://key@sentry.example/1",
	}
	cfg := &Config{}

	err := applyLegacyEnv(cfg, func(k string) string { return env[k] })

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "shh", cfg.Session.Secret)
	assert.Equal(t, "postgres://u:p@localhost:5432/hubba", cfg.Postgres.URL)
	assert.Equal(t, "skatehubba-prod", cfg.Firebase.ProjectID)
	assert.Equal(t, "https://key@sentry.example/1", cfg.Sentry.DSN)
}

func TestApplyLegacyEnv_InvalidPort(t *testing.T) {
	cfg := &Config{}

	err := applyLegacyEnv(cfg, func(k string) string {
		if k == "PORT" {
			return "eighty"
		}

		return ""
	})

	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, EnvDevelopment, cfg.Env.Env)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, LimitRule{Requests: 5, Window: 15 * time.Minute}, cfg.RateLimit.Signup)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxAvatarBytes)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, defaultChatSystemPrompt, cfg.Chat.SystemPrompt)
	assert.Contains(t, cfg.Chat.SystemPrompt, "You are Hubba")
	assert.NotNil(t, cfg.Debug)
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("SESSION_COOKIENAME", "hubba_session")
	t.Setenv("RATELIMIT_SIGNUP_REQUESTS", "9")

	cfg, err := LoadWithEnv[Config]("config")

	require.NoError(t, err)
	require.NotNil(t, cfg.Session)
	assert.Equal(t, "hubba_session", cfg.Session.CookieName)
	assert.Equal(t, 9, cfg.RateLimit.Signup.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Signup.Window)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}
