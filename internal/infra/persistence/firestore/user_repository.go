package firestore

import (
	"context"
	"time"

	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	client *firestore.Client
	now    func() time.Time
}

// NewUserRepository creates a Firestore-backed UserRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client, now: time.Now}
}

func (r *userRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

func (r *userRepository) FindByUID(ctx context.Context, uid string) (*entity.User, error) {
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user document")
	}

	var doc userDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode user document")
	}
	if doc.UID == "" {
		doc.UID = uid
	}

	return doc.toEntity(), nil
}

// UpsertIdentity runs in a transaction so the first-sign-in defaults are
// written exactly once even when two sessions are created concurrently.
func (r *userRepository) UpsertIdentity(ctx context.Context, identity *entity.IdentityProfile) (*entity.User, error) {
	ref := r.doc(identity.UID)

	var result *entity.User
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := r.now().UTC()

		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return errors.Wrap(err, "failed to read user document")
		}

		if snap == nil || !snap.Exists() {
			doc := newUserDocument(identity, now)
			result = doc.toEntity()

			return tx.Set(ref, doc)
		}

		var doc userDocument
		if err := snap.DataTo(&doc); err != nil {
			return errors.Wrap(err, "failed to decode user document")
		}

		updates := mergeIdentity(&doc, identity, now)
		result = doc.toEntity()

		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}

	return result, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid string, update entity.ProfileUpdate) (*entity.User, error) {
	ref := r.doc(uid)

	var result *entity.User
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return repository.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to read user document")
		}

		var doc userDocument
		if err := snap.DataTo(&doc); err != nil {
			return errors.Wrap(err, "failed to decode user document")
		}

		now := r.now().UTC()
		updates := []firestore.Update{{Path: "updatedAt", Value: now}}
		if update.DisplayName != nil {
			doc.DisplayName = *update.DisplayName
			updates = append(updates, firestore.Update{Path: "displayName", Value: doc.DisplayName})
		}
		if update.PhotoURL != nil {
			doc.PhotoURL = *update.PhotoURL
			updates = append(updates, firestore.Update{Path: "photoURL", Value: doc.PhotoURL})
		}
		doc.UpdatedAt = now
		if doc.UID == "" {
			doc.UID = uid
		}
		result = doc.toEntity()

		return tx.Update(ref, updates)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update user profile")
	}

	return result, nil
}

func newUserDocument(identity *entity.IdentityProfile, now time.Time) *userDocument {
	return &userDocument{
		UID:         identity.UID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
		Provider:    identity.Provider,
		XP:          0,
		Level:       entity.DefaultLevel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// mergeIdentity applies the non-empty identity fields to doc and returns
// the field map to write with MergeAll. createdAt, xp and level are never
// part of the merge.
func mergeIdentity(doc *userDocument, identity *entity.IdentityProfile, now time.Time) map[string]any {
	updates := map[string]any{
		"uid":       identity.UID,
		"updatedAt": now,
	}
	doc.UID = identity.UID
	doc.UpdatedAt = now

	set := func(field string, value string, target *string) {
		if value == "" {
			return
		}
		*target = value
		updates[field] = value
	}
	set("email", identity.Email, &doc.Email)
	set("displayName", identity.DisplayName, &doc.DisplayName)
	set("photoURL", identity.PhotoURL, &doc.PhotoURL)
	set("provider", identity.Provider, &doc.Provider)

	return updates
}
