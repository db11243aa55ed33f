// Package impl contains the implementation of the application's business logic.
package impl

import (
	"log/slog"
	"strings"

	"skatehubba/internal/domain/entity"
	domainerrors "skatehubba/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// normalizeEmail trims, lower-cases and validates a submitted address.
// 254 is the SMTP path limit.
func normalizeEmail(raw string) (string, error) {
	email := entity.NormalizeEmail(raw)
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return "", domainerrors.ErrInvalidEmail.WithDetails(err.Error())
	}

	return email, nil
}

// maskEmail keeps enough of an address to correlate log lines.
func maskEmail(email string) slog.Attr {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return slog.String("email", "***")
	}

	return slog.String("email", email[:1]+"***"+email[at:])
}
