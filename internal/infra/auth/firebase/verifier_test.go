package firebase

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token *auth.Token
	err   error
}

func (s stubVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return s.token, s.err
}

func TestIdentityVerifier_MapsClaims(t *testing.T) {
	v := &identityVerifier{client: stubVerifier{token: &auth.Token{
		UID: "uid-7",
		Claims: map[string]any{
			"email":   "sk8@example.com",
			"name":    "Sk8 Rat",
			"picture": "https://lh3.googleusercontent.com/a/photo",
		},
		Firebase: auth.FirebaseInfo{SignInProvider: "google.com"},
	}}}

	identity, err := v.VerifyIDToken(context.Background(), "token")

	require.NoError(t, err)
	assert.Equal(t, "uid-7", identity.UID)
	assert.Equal(t, "sk8@example.com", identity.Email)
	assert.Equal(t, "Sk8 Rat", identity.DisplayName)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo", identity.PhotoURL)
	assert.Equal(t, "google.com", identity.Provider)
}

func TestIdentityVerifier_MissingClaims(t *testing.T) {
	v := &identityVerifier{client: stubVerifier{token: &auth.Token{UID: "uid-8"}}}

	identity, err := v.VerifyIDToken(context.Background(), "token")

	require.NoError(t, err)
	assert.Empty(t, identity.Email)
	assert.Equal(t, "unknown", identity.Provider)
}

func TestIdentityVerifier_Error(t *testing.T) {
	v := &identityVerifier{client: stubVerifier{err: errors.New("ID token has expired")}}

	_, err := v.VerifyIDToken(context.Background(), "token")

	assert.ErrorContains(t, err, "expired")
}
