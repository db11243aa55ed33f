// Package handler contains the HTTP handlers for the API.
package handler

import (
	"net/http"
	"strings"

	"skatehubba/config"
	"skatehubba/internal/delivery/api/response"
	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/service"
	"skatehubba/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// SessionUser is the public part of a profile returned after login.
type SessionUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// CreateSessionResponse is the body of POST /api/auth/session.
type CreateSessionResponse struct {
	OK   bool         `json:"ok"`
	User *SessionUser `json:"user"`
}

// MeResponse is the body of GET /api/auth/me.
type MeResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Provider    string `json:"provider"`
}

// AuthHandler exchanges Firebase ID tokens for session cookies.
type AuthHandler struct {
	uc      usecase.AuthUsecase
	tokens  service.SessionTokenService
	cookies sessionCookies
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, tokens service.SessionTokenService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		uc:      uc,
		tokens:  tokens,
		cookies: newSessionCookies(cfg),
	}
}

// CreateSession handles POST /api/auth/session.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	idToken, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return domainerrors.ErrMissingToken
	}

	output, err := h.uc.CreateSession(c.Request().Context(), idToken)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.set(c, output.Token, h.tokens.TTL())

	return response.Success(c, http.StatusOK, CreateSessionResponse{
		OK:   true,
		User: toSessionUser(output.User),
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := deliverycontext.GetUID(c)
	if !ok {
		return domainerrors.ErrNoSession
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), uid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMeResponse(user))
}

// Logout handles POST /api/auth/logout. Sessions are stateless, so only the
// cookie is expired.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.clear(c)

	return response.OK(c, "Logged out")
}

func toSessionUser(u *entity.User) *SessionUser {
	if u == nil {
		return nil
	}

	return &SessionUser{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

// bearerToken strips the auth scheme, which is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	return header[len(bearerPrefix):], true
}
