package mail

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"skatehubba/config"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *resend.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resend.NewClient("re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return client
}

func TestResendMailer_SendSubscribeConfirmation(t *testing.T) {
	var payload map[string]any
	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/emails", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	})

	mailer := NewResendMailer(client, "noreply@skatehubba.com", "https://skatehubba.com")
	err := mailer.SendSubscribeConfirmation(context.Background(), "rider@example.com", "Rider")

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "SkateHubba <noreply@skatehubba.com>", payload["from"])
	assert.Equal(t, []any{"rider@example.com"}, payload["to"])
	assert.Equal(t, subscribedSubject, payload["subject"])
	assert.Contains(t, payload["html"], "Hey Rider")
	assert.Contains(t, payload["html"], "https://skatehubba.com")
}

func TestResendMailer_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from"}`))
	})

	err := NewResendMailer(client, "", "https://skatehubba.com").
		SendWelcome(context.Background(), "rider@example.com", "landing")

	assert.ErrorContains(t, err, "welcome")
}

func TestRender_EscapesFirstName(t *testing.T) {
	html, err := render(confirmationTemplate, templateData{FirstName: "<script>"})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestNew_WithoutKeyLogsOnly(t *testing.T) {
	mailer := New(Params{
		Config: &config.Config{Mail: &config.MailConfig{}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	assert.IsType(t, &logMailer{}, mailer)
	assert.NoError(t, mailer.SendWelcome(context.Background(), "a@b.co", "landing"))
}
