// Package client is the Go client for the SkateHubba API. Store mirrors the
// signed-in user the way the web app does: the identity provider owns the
// login, the backend owns the session cookie and the profile.
package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// errSignedOut marks a session exchange overtaken by a sign-out.
var errSignedOut = errors.New("signed out before the session was established")

// State is a point-in-time view of the store.
type State struct {
	User         *Profile
	FirebaseUser *IdentityUser
	Loading      bool
}

func (s State) clone() State {
	out := State{Loading: s.Loading}
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	if s.FirebaseUser != nil {
		fu := *s.FirebaseUser
		out.FirebaseUser = &fu
	}

	return out
}

// Store holds {user, firebaseUser, loading}. Writes are last-write-wins.
type Store struct {
	identity IdentityProvider
	backend  Backend
	logger   *slog.Logger

	// sessionMu serializes session exchanges with sign-out.
	sessionMu sync.Mutex

	mu     sync.RWMutex
	state  State
	epoch  uint64 // bumped on every sign-out
	// revoked is the ID token of the last identity signed out; it is never exchanged again.
	revoked string
	subs   map[int]chan State
	nextID int
}

// NewStore starts in the loading state until the first auth transition or action.
func NewStore(identity IdentityProvider, backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		identity: identity,
		backend:  backend,
		logger:   logger,
		state:    State{Loading: true},
		subs:     make(map[int]chan State),
	}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.clone()
}

// Subscribe returns a channel that always holds the latest state once it
// changes. Call the returned func to stop receiving.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}

	return ch, cancel
}

// Bootstrap follows the identity provider until ctx is done. Signed-in
// transitions open a backend session and load the profile unless an action
// already did so for the same ID token; signed-out transitions clear the store.
func (s *Store) Bootstrap(ctx context.Context) {
	changes := s.identity.AuthStateChanges(ctx)

	go func() {
		for fu := range changes {
			if fu == nil {
				s.signedOut()

				continue
			}

			_, err := s.establish(ctx, fu, s.currentEpoch())
			if err != nil && !errors.Is(err, errSignedOut) && ctx.Err() == nil {
				s.logger.Warn("Failed to sync session after auth change",
					slog.String("uid", fu.UID),
					slog.Any("error", err),
				)
			}
		}
	}()
}

func (s *Store) SignInGoogle(ctx context.Context, googleIDToken string) (*Profile, error) {
	return s.signIn(ctx, func() (*IdentityUser, error) {
		return s.identity.SignInWithGoogle(ctx, googleIDToken)
	})
}

func (s *Store) SignInEmail(ctx context.Context, email, password string) (*Profile, error) {
	return s.signIn(ctx, func() (*IdentityUser, error) {
		return s.identity.SignInWithPassword(ctx, email, password)
	})
}

func (s *Store) SignUpEmail(ctx context.Context, email, password string) (*Profile, error) {
	return s.signIn(ctx, func() (*IdentityUser, error) {
		return s.identity.SignUp(ctx, email, password)
	})
}

// SignOut drops the backend cookie and the identity session. A failed
// logout call is logged; the local state is cleared regardless.
func (s *Store) SignOut(ctx context.Context) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	s.update(func(st *State) { s.dropIdentity(st) })

	if err := s.backend.Logout(ctx); err != nil {
		s.logger.Warn("Backend logout failed", slog.Any("error", err))
	}

	if err := s.identity.SignOut(ctx); err != nil {
		return errors.Wrap(err, "failed to sign out")
	}

	s.set(State{})

	return nil
}

func (s *Store) signIn(ctx context.Context, login func() (*IdentityUser, error)) (*Profile, error) {
	epoch := s.currentEpoch()
	s.update(func(st *State) { st.Loading = true })

	fu, err := login()
	if err != nil {
		s.update(func(st *State) { st.Loading = false })

		return nil, errors.Wrap(err, "sign-in failed")
	}

	return s.establish(ctx, fu, epoch)
}

// establish exchanges the ID token for a session cookie and loads the
// profile. On failure the identity stays recorded without a profile.
// Exchanges begun before a sign-out and tokens already signed out are
// dropped. A token the store already holds a session for is not exchanged again.
func (s *Store) establish(ctx context.Context, fu *IdentityUser, epoch uint64) (*Profile, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	s.mu.Lock()
	if s.epoch != epoch || (s.revoked != "" && s.revoked == fu.IDToken) {
		s.mu.Unlock()

		return nil, errSignedOut
	}
	if st := s.state; st.User != nil && st.FirebaseUser != nil && st.FirebaseUser.IDToken == fu.IDToken {
		profile := *st.User
		s.mu.Unlock()
		s.update(func(st *State) { st.Loading = false })

		return &profile, nil
	}
	s.mu.Unlock()

	if _, err := s.backend.CreateSession(ctx, fu.IDToken); err != nil {
		s.set(State{FirebaseUser: fu})

		return nil, errors.Wrap(err, "failed to create session")
	}

	profile, err := s.backend.Me(ctx)
	if err != nil {
		s.set(State{FirebaseUser: fu})

		return nil, errors.Wrap(err, "failed to load profile")
	}

	s.set(State{User: profile, FirebaseUser: fu})

	return profile, nil
}

// signedOut clears the store. Only dropping a held identity counts as a
// sign-out; the initial signed-out report does not cancel a sign-in in flight.
func (s *Store) signedOut() {
	s.update(func(st *State) {
		if st.FirebaseUser != nil {
			s.dropIdentity(st)
		}
		*st = State{}
	})
}

// dropIdentity must be called with mu held.
func (s *Store) dropIdentity(st *State) {
	s.epoch++
	if st.FirebaseUser != nil {
		s.revoked = st.FirebaseUser.IDToken
	}
}

func (s *Store) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.epoch
}

func (s *Store) set(state State) {
	s.update(func(st *State) { *st = state })
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	snapshot := s.state.clone()
	for _, ch := range s.subs {
		offerLatest(ch, snapshot)
	}
}
