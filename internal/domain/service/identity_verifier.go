package service

import (
	"context"

	"skatehubba/internal/domain/entity"
)

// IdentityVerifier checks identity-provider ID tokens.
type IdentityVerifier interface {
	// VerifyIDToken validates signature, audience and expiry of an ID token
	// and returns the identity it asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityProfile, error)
}
