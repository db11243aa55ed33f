package handler

import (
	"net/http"
	"time"

	"skatehubba/config"

	"github.com/labstack/echo/v4"
)

// sessionCookies writes and clears the session cookie.
type sessionCookies struct {
	name   string
	secure bool
}

func newSessionCookies(cfg *config.Config) sessionCookies {
	return sessionCookies{
		name:   cfg.Session.CookieName,
		secure: cfg.IsProduction(),
	}
}

func (s sessionCookies) set(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s sessionCookies) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
