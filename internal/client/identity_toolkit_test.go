package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolkitServer(t *testing.T, handler http.HandlerFunc) *IdentityToolkit {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewIdentityToolkit(srv.URL, "test-key", 5*time.Second)
}

func TestIdentityToolkit_SignInWithPassword(t *testing.T) {
	var gotPath, gotKey string
	var gotBody passwordRequest

	toolkit := newToolkitServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"localId":"uid-1","email":"kick@flip.io","displayName":"Kick","idToken":"id-token","refreshToken":"refresh","expiresIn":"3600"}`))
	})

	user, err := toolkit.SignInWithPassword(context.Background(), "kick@flip.io", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "/accounts:signInWithPassword", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, passwordRequest{Email: "kick@flip.io", Password: "secret123", ReturnSecureToken: true}, gotBody)

	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "id-token", user.IDToken)
	assert.Equal(t, ProviderPassword, user.ProviderID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), user.ExpiresAt, time.Minute)
	assert.Equal(t, user, toolkit.CurrentUser())
}

func TestIdentityToolkit_SignUp_Error(t *testing.T) {
	toolkit := newToolkitServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signUp", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"WEAK_PASSWORD : Password should be at least 6 characters"}}`))
	})

	user, err := toolkit.SignUp(context.Background(), "kick@flip.io", "123")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.Nil(t, toolkit.CurrentUser())

	var idErr *IdentityError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, http.StatusBadRequest, idErr.Status)
	assert.Equal(t, "WEAK_PASSWORD", idErr.Code)
	assert.Equal(t, "Password should be at least 6 characters", idErr.Message)
}

func TestIdentityToolkit_ErrorWithoutEnvelope(t *testing.T) {
	toolkit := newToolkitServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := toolkit.SignInWithPassword(context.Background(), "a@b.co", "pw")

	var idErr *IdentityError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), idErr.Code)
}

func TestIdentityToolkit_SignInWithGoogle(t *testing.T) {
	var gotBody idpRequest

	toolkit := newToolkitServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signInWithIdp", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"localId":"g-1","email":"g@skate.io","photoUrl":"https://img/p.png","providerId":"google.com","idToken":"gid","expiresIn":"3600"}`))
	})

	user, err := toolkit.SignInWithGoogle(context.Background(), "google-token")
	require.NoError(t, err)

	postBody, err := url.ParseQuery(gotBody.PostBody)
	require.NoError(t, err)
	assert.Equal(t, "google-token", postBody.Get("id_token"))
	assert.Equal(t, ProviderGoogle, postBody.Get("providerId"))
	assert.True(t, gotBody.ReturnSecureToken)
	assert.NotEmpty(t, gotBody.RequestURI)

	assert.Equal(t, ProviderGoogle, user.ProviderID)
	assert.Equal(t, "https://img/p.png", user.PhotoURL)
}

func TestIdentityToolkit_AuthStateChanges(t *testing.T) {
	toolkit := newToolkitServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"localId":"uid-1","idToken":"tok","expiresIn":"3600"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	changes := toolkit.AuthStateChanges(ctx)

	assert.Nil(t, receive(t, changes), "current state is delivered first")

	_, err := toolkit.SignInWithPassword(ctx, "a@b.co", "pw")
	require.NoError(t, err)
	signedIn := receive(t, changes)
	require.NotNil(t, signedIn)
	assert.Equal(t, "uid-1", signedIn.UID)

	require.NoError(t, toolkit.SignOut(ctx))
	assert.Nil(t, receive(t, changes))

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")

		var zero T

		return zero
	}
}
