package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

	// signInWithIdp requires a requestUri even for ID token exchange.
	idpRequestURI = "http://localhost"
)

var _ IdentityProvider = (*IdentityToolkit)(nil)

// IdentityToolkit signs users in through the Firebase Identity Toolkit REST
// API and keeps the current user for AuthStateChanges subscribers.
type IdentityToolkit struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu       sync.Mutex
	current  *IdentityUser
	watchers map[int]chan *IdentityUser
	nextID   int
}

// NewIdentityToolkit creates the provider. An empty baseURL selects the
// public Google endpoint.
func NewIdentityToolkit(baseURL, apiKey string, timeout time.Duration) *IdentityToolkit {
	if baseURL == "" {
		baseURL = DefaultIdentityToolkitURL
	}

	return &IdentityToolkit{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		watchers:   make(map[int]chan *IdentityUser),
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type idpRequest struct {
	PostBody            string `json:"postBody"`
	RequestURI          string `json:"requestUri"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoUrl"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	ProviderID   string `json:"providerId"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (t *IdentityToolkit) SignInWithPassword(ctx context.Context, email, password string) (*IdentityUser, error) {
	return t.signIn(ctx, "accounts:signInWithPassword", passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, ProviderPassword)
}

func (t *IdentityToolkit) SignUp(ctx context.Context, email, password string) (*IdentityUser, error) {
	return t.signIn(ctx, "accounts:signUp", passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, ProviderPassword)
}

// SignInWithGoogle exchanges a Google OAuth ID token for a Firebase session.
func (t *IdentityToolkit) SignInWithGoogle(ctx context.Context, googleIDToken string) (*IdentityUser, error) {
	postBody := url.Values{
		"id_token":   {googleIDToken},
		"providerId": {ProviderGoogle},
	}

	return t.signIn(ctx, "accounts:signInWithIdp", idpRequest{
		PostBody:            postBody.Encode(),
		RequestURI:          idpRequestURI,
		ReturnIdpCredential: true,
		ReturnSecureToken:   true,
	}, ProviderGoogle)
}

// SignOut forgets the current user locally; Firebase has no server-side sign-out.
func (t *IdentityToolkit) SignOut(_ context.Context) error {
	t.setCurrent(nil)

	return nil
}

func (t *IdentityToolkit) AuthStateChanges(ctx context.Context) <-chan *IdentityUser {
	ch := make(chan *IdentityUser, 1)

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.watchers[id] = ch
	ch <- t.current
	t.mu.Unlock()

	go func() {
		<-ctx.Done()

		t.mu.Lock()
		delete(t.watchers, id)
		close(ch)
		t.mu.Unlock()
	}()

	return ch
}

// CurrentUser returns the signed-in user or nil.
func (t *IdentityToolkit) CurrentUser() *IdentityUser {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current
}

func (t *IdentityToolkit) setCurrent(user *IdentityUser) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = user
	for _, ch := range t.watchers {
		offerLatest(ch, user)
	}
}

func (t *IdentityToolkit) signIn(ctx context.Context, method string, body any, fallbackProvider string) (*IdentityUser, error) {
	var resp accountResponse
	if err := t.post(ctx, method, body, &resp); err != nil {
		return nil, err
	}

	user := &IdentityUser{
		UID:          resp.LocalID,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		PhotoURL:     resp.PhotoURL,
		ProviderID:   resp.ProviderID,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
	}
	if user.ProviderID == "" {
		user.ProviderID = fallbackProvider
	}
	if secs, err := strconv.Atoi(resp.ExpiresIn); err == nil {
		user.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
	}

	t.setCurrent(user)

	return user, nil
}

func (t *IdentityToolkit) post(ctx context.Context, method string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal identity request")
	}

	endpoint := t.baseURL + "/" + method + "?key=" + url.QueryEscape(t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build identity request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "identity request %s failed", method)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeIdentityError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode identity response")
	}

	return nil
}

// decodeIdentityError splits messages like "WEAK_PASSWORD : Password should
// be at least 6 characters" into code and detail.
func decodeIdentityError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Message == "" {
		return &IdentityError{Status: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
	}

	code, detail, _ := strings.Cut(envelope.Error.Message, " : ")

	return &IdentityError{
		Status:  resp.StatusCode,
		Code:    strings.TrimSpace(code),
		Message: strings.TrimSpace(detail),
	}
}
