// Package firebase verifies Firebase Auth ID tokens with the Admin SDK.
package firebase

import (
	"context"

	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/service"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// TokenVerifier is the subset of *auth.Client the verifier needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type identityVerifier struct {
	client TokenVerifier
}

// NewIdentityVerifier adapts the Admin Auth client to service.IdentityVerifier.
func NewIdentityVerifier(client *auth.Client) service.IdentityVerifier {
	return &identityVerifier{client: client}
}

func (v *identityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityProfile, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "firebase rejected ID token")
	}

	return identityFromToken(token), nil
}

func identityFromToken(token *auth.Token) *entity.IdentityProfile {
	provider := entity.ProviderTypeUnknown.String()
	if token.Firebase.SignInProvider != "" {
		provider = token.Firebase.SignInProvider
	}

	return &entity.IdentityProfile{
		UID:         token.UID,
		Email:       stringClaim(token.Claims, "email"),
		DisplayName: stringClaim(token.Claims, "name"),
		PhotoURL:    stringClaim(token.Claims, "picture"),
		Provider:    provider,
	}
}

func stringClaim(claims map[string]any, key string) string {
	v, _ := claims[key].(string)

	return v
}
