// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"skatehubba/internal/domain/entity"
)

// ErrUserNotFound is returned when no profile document exists for a uid.
var ErrUserNotFound = errors.New("user not found")

// UserRepository stores user profiles keyed by Firebase uid.
type UserRepository interface {
	// FindByUID retrieves a profile by uid.
	FindByUID(ctx context.Context, uid string) (*entity.User, error)

	// UpsertIdentity creates the profile on first sign-in (XP 0, level 1) or
	// merges the non-empty identity fields into the existing document.
	// It returns the stored profile after the write.
	UpsertIdentity(ctx context.Context, identity *entity.IdentityProfile) (*entity.User, error)

	// UpdateProfile applies a partial edit and returns the updated profile.
	UpdateProfile(ctx context.Context, uid string, update entity.ProfileUpdate) (*entity.User, error)
}
