package middleware

import (
	"net/http"

	"skatehubba/config"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"github.com/unrolled/secure"
)

const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://apis.google.com https://www.gstatic.com; " +
	"connect-src 'self' https://*.googleapis.com https://*.firebaseio.com https://*.sentry.io; " +
	"img-src 'self' data: https:; " +
	"style-src 'self' 'unsafe-inline'; " +
	"frame-src https://*.firebaseapp.com https://accounts.google.com"

// SecureHeaders sets the browser hardening headers.
func SecureHeaders(cfg *config.Config) echo.MiddlewareFunc {
	production := cfg.IsProduction()
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	})

	return echo.WrapMiddleware(sm.Handler)
}

// CORS allows the configured front-end origins to send credentialed requests.
func CORS(cfg *config.Config) echo.MiddlewareFunc {
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 && !cfg.IsProduction() {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: true,
	})

	return echo.WrapMiddleware(c.Handler)
}
