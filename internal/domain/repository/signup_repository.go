package repository

import (
	"context"

	"skatehubba/internal/domain/entity"
)

// SignupRepository persists secure-signup records.
type SignupRepository interface {
	// Create stores a signup, returning ErrDuplicateEmail if the email exists.
	Create(ctx context.Context, signup *entity.Signup) error
}
