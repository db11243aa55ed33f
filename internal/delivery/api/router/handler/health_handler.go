package handler

import (
	"net/http"

	"skatehubba/internal/delivery/api/middleware"
	"skatehubba/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// SessionPeeker reports what session cookie a request carries.
type SessionPeeker interface {
	Peek(r *http.Request) (uid string, present bool, err error)
}

// DebugSessionResponse never includes the token itself.
type DebugSessionResponse struct {
	OK            bool   `json:"ok"`
	CookiePresent bool   `json:"cookiePresent"`
	Valid         bool   `json:"valid"`
	UID           string `json:"uid,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, response.OKResponse{OK: true})
}

type DebugHandler struct {
	sessions SessionPeeker
}

func NewDebugHandler(guard *middleware.SessionGuard) *DebugHandler {
	return &DebugHandler{sessions: guard}
}

// Session handles GET /api/debug/session.
func (h *DebugHandler) Session(c echo.Context) error {
	uid, present, err := h.sessions.Peek(c.Request())

	resp := DebugSessionResponse{OK: true, CookiePresent: present}
	switch {
	case !present:
		resp.Reason = "no session cookie"
	case err != nil:
		resp.Reason = "invalid session"
	default:
		resp.Valid = true
		resp.UID = uid
	}

	return response.Success(c, http.StatusOK, resp)
}
