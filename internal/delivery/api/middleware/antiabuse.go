package middleware

import (
	"log/slog"
	"regexp"
	"strings"

	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/util"

	"github.com/labstack/echo/v4"
)

var blockedUserAgent = regexp.MustCompile(`(?i)bot|crawler|spider|scraper|curl|wget|python`)

// UserAgentFilter rejects requests without a user agent or from obvious
// automation clients.
type UserAgentFilter struct {
	logger *slog.Logger
}

func NewUserAgentFilter(logger *slog.Logger) *UserAgentFilter {
	return &UserAgentFilter{logger: logger}
}

// Check is placed after the rate limiter so blocked clients still consume budget.
func (f *UserAgentFilter) Check(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ua := strings.TrimSpace(req.UserAgent())
		logger := deliverycontext.GetLoggerOrDefault(req.Context(), f.logger)

		if ua == "" {
			logger.Warn("Signup rejected: missing user agent", slog.String("client_ip", util.ClientIP(req)))

			return domainerrors.ErrMissingUserAgent
		}
		if blockedUserAgent.MatchString(ua) {
			logger.Warn("Signup rejected: blocked user agent",
				slog.String("client_ip", util.ClientIP(req)),
				slog.String("user_agent", ua),
			)

			return domainerrors.ErrBlockedUserAgent
		}

		return next(c)
	}
}
