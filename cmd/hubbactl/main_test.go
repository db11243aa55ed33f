package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPassword(t *testing.T, pw string) {
	t.Helper()

	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func startBackends(t *testing.T) (identityURL, apiURL string) {
	t.Helper()

	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "kickflip" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))

			return
		}
		_, _ = w.Write([]byte(`{"localId":"uid-1","email":"kick@flip.io","idToken":"tok-1","expiresIn":"3600"}`))
	}))
	t.Cleanup(identity.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "signed", Path: "/"})
		_, _ = w.Write([]byte(`{"ok":true,"user":{"uid":"uid-1","email":"kick@flip.io"}}`))
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}
		_, _ = w.Write([]byte(`{"uid":"uid-1","email":"kick@flip.io","displayName":"Kick","provider":"password"}`))
	})
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	return identity.URL, api.URL
}

func TestRun_Login(t *testing.T) {
	identityURL, apiURL := startBackends(t)
	t.Setenv("FIREBASE_IDENTITY_URL", identityURL)
	stubPassword(t, "kickflip")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-api", apiURL, "-key", "k", "login", "kick@flip.io"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Signed in as kick@flip.io (uid-1)")
}

func TestRun_Whoami(t *testing.T) {
	identityURL, apiURL := startBackends(t)
	t.Setenv("FIREBASE_IDENTITY_URL", identityURL)
	stubPassword(t, "kickflip")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-api", apiURL, "-key", "k", "whoami", "kick@flip.io"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"displayName": "Kick"`)
	assert.Contains(t, out.String(), `"firebaseUid": "uid-1"`)
}

func TestRun_Errors(t *testing.T) {
	identityURL, apiURL := startBackends(t)
	t.Setenv("FIREBASE_IDENTITY_URL", identityURL)
	t.Setenv("FIREBASE_API_KEY", "")
	t.Setenv("VITE_FIREBASE_API_KEY", "")
	stubPassword(t, "wrong")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing key", []string{"-api", apiURL, "login", "a@b.co"}, "API key"},
		{"missing argument", []string{"-key", "k", "login"}, "expected a command"},
		{"unknown command", []string{"-api", apiURL, "-key", "k", "ollie", "x"}, "unknown command"},
		{"bad password", []string{"-api", apiURL, "-key", "k", "login", "a@b.co"}, "INVALID_LOGIN_CREDENTIALS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
