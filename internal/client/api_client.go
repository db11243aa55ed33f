package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

// SessionUser is returned by POST /api/auth/session.
type SessionUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// Profile is returned by GET /api/auth/me.
type Profile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Provider    string `json:"provider"`
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Backend is the part of the SkateHubba API the store needs.
type Backend interface {
	CreateSession(ctx context.Context, idToken string) (*SessionUser, error)
	Me(ctx context.Context) (*Profile, error)
	Logout(ctx context.Context) error
}

// APIClient talks to the backend and keeps the session cookie in a jar.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*APIClient)(nil)

func NewAPIClient(baseURL string, timeout time.Duration) (*APIClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}

	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// CreateSession exchanges a Firebase ID token for the session cookie.
func (c *APIClient) CreateSession(ctx context.Context, idToken string) (*SessionUser, error) {
	var body struct {
		OK   bool         `json:"ok"`
		User *SessionUser `json:"user"`
	}

	header := http.Header{"Authorization": {"Bearer " + idToken}}
	if err := c.do(ctx, http.MethodPost, "/api/auth/session", header, &body); err != nil {
		return nil, err
	}
	if body.User == nil {
		return nil, errors.New("session response has no user")
	}

	return body.User, nil
}

func (c *APIClient) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *APIClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}

		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}
