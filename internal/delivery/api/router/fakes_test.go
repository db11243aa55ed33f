package router_test

import (
	"context"
	"sync"
	"time"

	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/repository"
	"skatehubba/internal/domain/service"

	"github.com/pkg/errors"
)

type fakeVerifier struct {
	identities map[string]*entity.IdentityProfile
}

func (v *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*entity.IdentityProfile, error) {
	identity, ok := v.identities[idToken]
	if !ok {
		return nil, errors.New("token rejected")
	}
	cp := *identity

	return &cp, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) FindByUID(_ context.Context, uid string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[uid]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u

	return &cp, nil
}

func (r *memUserRepo) UpsertIdentity(_ context.Context, identity *entity.IdentityProfile) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	u, ok := r.users[identity.UID]
	if !ok {
		u = &entity.User{UID: identity.UID, Level: entity.DefaultLevel, CreatedAt: now}
		r.users[identity.UID] = u
	}
	if identity.Email != "" {
		u.Email = identity.Email
	}
	if identity.DisplayName != "" {
		u.DisplayName = identity.DisplayName
	}
	if identity.PhotoURL != "" {
		u.PhotoURL = identity.PhotoURL
	}
	if identity.Provider != "" {
		u.Provider = identity.Provider
	}
	u.UpdatedAt = now
	cp := *u

	return &cp, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, uid string, update entity.ProfileUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[uid]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if update.DisplayName != nil {
		u.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		u.PhotoURL = *update.PhotoURL
	}
	cp := *u

	return &cp, nil
}

type memSignupRepo struct {
	mu      sync.Mutex
	signups map[string]*entity.Signup
}

func newMemSignupRepo() *memSignupRepo {
	return &memSignupRepo{signups: make(map[string]*entity.Signup)}
}

func (r *memSignupRepo) Create(_ context.Context, signup *entity.Signup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.signups[signup.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	cp := *signup
	r.signups[signup.Email] = &cp

	return nil
}

func (r *memSignupRepo) emails() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.signups))
	for email := range r.signups {
		out = append(out, email)
	}

	return out
}

type memSubscriberRepo struct {
	mu          sync.Mutex
	subscribers map[string]*entity.Subscriber
}

func (r *memSubscriberRepo) Create(_ context.Context, sub *entity.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscribers[sub.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.subscribers[sub.Email] = sub

	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.SignupEvent
}

func (p *recordingPublisher) PublishSignupEvent(_ context.Context, event *service.SignupEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.events)
}

type nopMailer struct{}

func (nopMailer) SendWelcome(context.Context, string, string) error { return nil }

func (nopMailer) SendSubscribeConfirmation(context.Context, string, string) error { return nil }
