package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	mu      sync.Mutex
	user    *IdentityUser
	err     error
	changes chan *IdentityUser
	signOut int
	// announce pushes signed-in users onto the auth state stream like a real provider.
	announce bool
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{changes: make(chan *IdentityUser, 4)}
}

func (f *fakeIdentity) login() (*IdentityUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err == nil && f.announce {
		f.changes <- f.user
	}

	return f.user, f.err
}

func (f *fakeIdentity) SignInWithPassword(context.Context, string, string) (*IdentityUser, error) {
	return f.login()
}

func (f *fakeIdentity) SignUp(context.Context, string, string) (*IdentityUser, error) {
	return f.login()
}

func (f *fakeIdentity) SignInWithGoogle(context.Context, string) (*IdentityUser, error) {
	return f.login()
}

func (f *fakeIdentity) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOut++

	return nil
}

func (f *fakeIdentity) AuthStateChanges(context.Context) <-chan *IdentityUser {
	return f.changes
}

type fakeBackend struct {
	mu         sync.Mutex
	profiles   map[string]*Profile // keyed by ID token
	current    *Profile
	sessionErr error
	sessions   int
	logouts    int
}

func (f *fakeBackend) sessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sessions
}

func (f *fakeBackend) CreateSession(_ context.Context, idToken string) (*SessionUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessions++
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	p, ok := f.profiles[idToken]
	if !ok {
		return nil, &APIError{Status: 401, Code: "INVALID_TOKEN"}
	}
	f.current = p

	return &SessionUser{UID: p.UID, Email: p.Email}, nil
}

func (f *fakeBackend) Me(context.Context) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return nil, &APIError{Status: 401, Code: "NO_SESSION"}
	}
	p := *f.current

	return &p, nil
}

func (f *fakeBackend) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.current = nil

	return nil
}

var (
	kickUser    = &IdentityUser{UID: "uid-1", Email: "kick@flip.io", IDToken: "tok-1", ProviderID: ProviderPassword}
	kickProfile = &Profile{UID: "uid-1", Email: "kick@flip.io", Provider: ProviderPassword}
)

func newTestStore() (*Store, *fakeIdentity, *fakeBackend) {
	identity := newFakeIdentity()
	backend := &fakeBackend{profiles: map[string]*Profile{"tok-1": kickProfile}}

	return NewStore(identity, backend, nil), identity, backend
}

func TestStore_InitialStateIsLoading(t *testing.T) {
	store, _, _ := newTestStore()

	assert.Equal(t, State{Loading: true}, store.Snapshot())
}

func TestStore_SignInEmail(t *testing.T) {
	store, identity, _ := newTestStore()
	identity.user = kickUser

	profile, err := store.SignInEmail(context.Background(), "kick@flip.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, kickProfile, profile)

	state := store.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, kickProfile, state.User)
	assert.Equal(t, "uid-1", state.FirebaseUser.UID)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store, identity, _ := newTestStore()
	identity.user = kickUser

	_, err := store.SignInGoogle(context.Background(), "google-token")
	require.NoError(t, err)

	snap := store.Snapshot()
	snap.User.DisplayName = "mutated"

	assert.Empty(t, store.Snapshot().User.DisplayName)
}

func TestStore_SignInFailures(t *testing.T) {
	t.Run("identity rejects", func(t *testing.T) {
		store, identity, _ := newTestStore()
		identity.err = &IdentityError{Status: 400, Code: "INVALID_LOGIN_CREDENTIALS"}

		_, err := store.SignInEmail(context.Background(), "kick@flip.io", "wrong")

		var idErr *IdentityError
		require.ErrorAs(t, err, &idErr)
		assert.Equal(t, State{}, store.Snapshot())
	})

	t.Run("backend rejects token", func(t *testing.T) {
		store, identity, backend := newTestStore()
		identity.user = kickUser
		backend.sessionErr = errors.New("backend down")

		_, err := store.SignUpEmail(context.Background(), "kick@flip.io", "pw")
		require.Error(t, err)

		state := store.Snapshot()
		assert.False(t, state.Loading)
		assert.Nil(t, state.User)
		require.NotNil(t, state.FirebaseUser)
		assert.Equal(t, "uid-1", state.FirebaseUser.UID)
	})
}

func TestStore_SignOut(t *testing.T) {
	store, identity, backend := newTestStore()
	identity.user = kickUser

	_, err := store.SignInEmail(context.Background(), "kick@flip.io", "pw")
	require.NoError(t, err)

	require.NoError(t, store.SignOut(context.Background()))

	assert.Equal(t, State{}, store.Snapshot())
	assert.Equal(t, 1, backend.logouts)
	assert.Equal(t, 1, identity.signOut)
}

func TestStore_BootstrapMirrorsAuthState(t *testing.T) {
	store, identity, _ := newTestStore()
	updates, stop := store.Subscribe()
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.Bootstrap(ctx)

	identity.changes <- kickUser
	require.Eventually(t, func() bool {
		return store.Snapshot().User != nil
	}, time.Second, 5*time.Millisecond)

	latest := receive(t, updates)
	assert.Equal(t, kickProfile, latest.User)
	assert.False(t, latest.Loading)

	identity.changes <- nil
	require.Eventually(t, func() bool {
		return store.Snapshot() == State{}
	}, time.Second, 5*time.Millisecond)
}

func TestStore_BootstrapKeepsIdentityWhenSessionFails(t *testing.T) {
	store, identity, _ := newTestStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.Bootstrap(ctx)

	identity.changes <- &IdentityUser{UID: "uid-2", IDToken: "unknown"}
	require.Eventually(t, func() bool {
		st := store.Snapshot()

		return st.FirebaseUser != nil && st.FirebaseUser.UID == "uid-2" && st.User == nil && !st.Loading
	}, time.Second, 5*time.Millisecond)
}

func TestStore_UnsubscribeClosesChannel(t *testing.T) {
	store, identity, _ := newTestStore()
	identity.user = kickUser

	updates, stop := store.Subscribe()
	stop()
	stop()

	_, ok := <-updates
	assert.False(t, ok)

	_, err := store.SignInEmail(context.Background(), "kick@flip.io", "pw")
	require.NoError(t, err)
}

func TestStore_SignInDuringBootstrapExchangesOnce(t *testing.T) {
	store, identity, backend := newTestStore()
	identity.user = kickUser
	identity.announce = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.Bootstrap(ctx)

	profile, err := store.SignInEmail(ctx, "kick@flip.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, kickProfile, profile)

	require.Eventually(t, func() bool { return len(identity.changes) == 0 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return backend.sessionCount() > 1 }, 100*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, 1, backend.sessionCount())
	assert.False(t, store.Snapshot().Loading)
}

func TestStore_ExchangeQueuedBeforeSignOutIsDropped(t *testing.T) {
	store, identity, backend := newTestStore()
	identity.user = kickUser
	ctx := context.Background()

	_, err := store.SignInEmail(ctx, "kick@flip.io", "pw")
	require.NoError(t, err)
	epoch := store.currentEpoch()

	require.NoError(t, store.SignOut(ctx))

	_, err = store.establish(ctx, kickUser, epoch)
	require.ErrorIs(t, err, errSignedOut)

	_, err = store.establish(ctx, kickUser, store.currentEpoch())
	require.ErrorIs(t, err, errSignedOut)

	assert.Equal(t, 1, backend.sessionCount())
	assert.Equal(t, State{}, store.Snapshot())
}
