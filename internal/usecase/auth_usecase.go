// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"skatehubba/internal/domain/entity"
)

// CreateSessionOutput is the result of exchanging an ID token for a session.
type CreateSessionOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// AuthUsecase exchanges identity-provider tokens for application sessions.
type AuthUsecase interface {
	// CreateSession verifies idToken, upserts the caller's profile and
	// signs a session token for it.
	CreateSession(ctx context.Context, idToken string) (*CreateSessionOutput, error)

	// CurrentUser loads the profile of an authenticated uid.
	CurrentUser(ctx context.Context, uid string) (*entity.User, error)
}
