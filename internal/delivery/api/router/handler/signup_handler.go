package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"skatehubba/internal/delivery/api/response"
	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/usecase"
	"skatehubba/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const signupSuccessMessage = "Thanks for signing up! We'll be in touch soon."

// SecureSignupRequest is the landing-page form. Company is a honeypot
// field hidden from humans.
type SecureSignupRequest struct {
	Email   string `json:"email" form:"email"`
	Source  string `json:"source" form:"source"`
	Company string `json:"company" form:"company"`
}

// SecureSignupResponse is identical for new and repeated signups.
type SecureSignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SignupHandler struct {
	uc     usecase.SignupUsecase
	logger *slog.Logger
}

// NewSignupHandler is the constructor for SignupHandler, injected by Fx.
func NewSignupHandler(uc usecase.SignupUsecase, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{uc: uc, logger: logger}
}

// SecureSignup handles POST /api/secure-signup. Rate limiting and the
// user-agent check run as route middleware before this handler.
func (h *SignupHandler) SecureSignup(c echo.Context) error {
	var req SecureSignupRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	r := c.Request()
	if strings.TrimSpace(req.Company) != "" {
		deliverycontext.GetLoggerOrDefault(r.Context(), h.logger).Warn("Signup rejected: honeypot filled",
			slog.String("client_ip", util.ClientIP(r)),
		)

		return domainerrors.ErrHoneypotTriggered
	}

	if _, err := h.uc.SecureSignup(r.Context(), usecase.SignupInput{
		Email:     req.Email,
		Source:    req.Source,
		UserAgent: r.UserAgent(),
		IPAddress: util.ClientIP(r),
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, SecureSignupResponse{
		Success: true,
		Message: signupSuccessMessage,
	})
}
