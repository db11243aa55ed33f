package middleware

import (
	"net/http"

	"skatehubba/config"
	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// SessionGuard admits requests carrying a valid session cookie.
type SessionGuard struct {
	tokens     service.SessionTokenService
	cookieName string
}

// NewSessionGuard is the constructor for SessionGuard.
func NewSessionGuard(tokens service.SessionTokenService, cfg *config.Config) *SessionGuard {
	return &SessionGuard{
		tokens:     tokens,
		cookieName: cfg.Session.CookieName,
	}
}

// Require rejects requests without a verifiable session and places the uid
// on the context for downstream handlers.
func (g *SessionGuard) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(g.cookieName)
		if err != nil || cookie.Value == "" {
			return domainerrors.ErrNoSession
		}

		claims, err := g.tokens.Validate(cookie.Value)
		if err != nil {
			return domainerrors.ErrInvalidSession.WithDetails(err.Error())
		}

		deliverycontext.SetUID(c, claims.UID)

		return next(c)
	}
}

// Peek reports the uid carried by the request's cookie without rejecting it.
// The second value is false when no cookie is present.
func (g *SessionGuard) Peek(r *http.Request) (uid string, present bool, err error) {
	cookie, cookieErr := r.Cookie(g.cookieName)
	if cookieErr != nil || cookie.Value == "" {
		return "", false, nil
	}

	claims, err := g.tokens.Validate(cookie.Value)
	if err != nil {
		return "", true, err
	}

	return claims.UID, true, nil
}

// CookieName returns the configured session cookie name.
func (g *SessionGuard) CookieName() string {
	return g.cookieName
}
