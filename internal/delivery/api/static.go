package api

import (
	"strings"

	"skatehubba/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// registerStatic serves the built front end for non-API paths, falling back
// to index.html so client-side routes resolve.
func registerStatic(e *echo.Echo, cfg *config.StaticConfig) {
	if cfg == nil || !cfg.Enabled || cfg.Root == "" {
		return
	}

	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  cfg.Root,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path

			return strings.HasPrefix(p, "/api/") || p == "/api" || strings.HasPrefix(p, "/avatars/")
		},
	}))
}
