package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"skatehubba/config"
	"skatehubba/internal/delivery/worker/handler"
	mockService "skatehubba/internal/mocks/service"

	"github.com/stretchr/testify/assert"
)

func TestWorkerEcho_Health(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Defaults()
	push := handler.NewPushHandler(handler.PushHandlerParams{
		Config: cfg,
		Logger: logger,
		Mailer: mockService.NewMockMailer(t),
	})

	e := NewEcho(cfg, logger, push)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
