package client

import (
	"context"
	"fmt"
	"time"
)

// Provider IDs reported by the identity provider.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google.com"
)

// IdentityUser is the signed-in Firebase account as seen by the client.
type IdentityUser struct {
	UID          string
	Email        string
	DisplayName  string
	PhotoURL     string
	ProviderID   string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// IdentityProvider is the client-side identity service. AuthStateChanges
// delivers the current user immediately and then every transition; nil
// means signed out. The channel is closed when ctx is done.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*IdentityUser, error)
	SignUp(ctx context.Context, email, password string) (*IdentityUser, error)
	SignInWithGoogle(ctx context.Context, googleIDToken string) (*IdentityUser, error)
	SignOut(ctx context.Context) error
	AuthStateChanges(ctx context.Context) <-chan *IdentityUser
}

// IdentityError is a rejection reported by the identity provider, e.g.
// EMAIL_EXISTS or INVALID_LOGIN_CREDENTIALS.
type IdentityError struct {
	Status  int
	Code    string
	Message string
}

func (e *IdentityError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("identity provider: %s (%s)", e.Code, e.Message)
	}

	return "identity provider: " + e.Code
}

// offerLatest replaces whatever is buffered in ch with v. ch must have a
// buffer of one and a single sender holding the owner's lock.
func offerLatest[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}

	select {
	case ch <- v:
	default:
	}
}
