package firestore

import (
	"testing"
	"time"

	"skatehubba/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestNewUserDocument_FirstSignInDefaults(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	doc := newUserDocument(&entity.IdentityProfile{
		UID:      "uid-1",
		Email:    "new@example.com",
		Provider: "password",
	}, now)

	assert.Equal(t, int64(0), doc.XP)
	assert.Equal(t, entity.DefaultLevel, doc.Level)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
	assert.Equal(t, "new@example.com", doc.Email)
}

func TestMergeIdentity_OnlyNonEmptyFields(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)
	doc := &userDocument{
		UID:         "uid-1",
		Email:       "old@example.com",
		DisplayName: "Custom Name",
		PhotoURL:    "https://cdn.example.com/avatars/uid-1/a.png",
		Provider:    "password",
		XP:          1200,
		Level:       7,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	updates := mergeIdentity(doc, &entity.IdentityProfile{
		UID:      "uid-1",
		Email:    "new@example.com",
		Provider: "google.com",
	}, now)

	assert.Equal(t, map[string]any{
		"uid":       "uid-1",
		"updatedAt": now,
		"email":     "new@example.com",
		"provider":  "google.com",
	}, updates)
	assert.Equal(t, "Custom Name", doc.DisplayName)
	assert.Equal(t, "https://cdn.example.com/avatars/uid-1/a.png", doc.PhotoURL)
	assert.Equal(t, int64(1200), doc.XP)
	assert.Equal(t, 7, doc.Level)
	assert.Equal(t, created, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
	assert.NotContains(t, updates, "xp")
	assert.NotContains(t, updates, "level")
	assert.NotContains(t, updates, "createdAt")
}

func TestSubscriberID_Deterministic(t *testing.T) {
	assert.Equal(t, subscriberID("rider@example.com"), subscriberID("rider@example.com"))
	assert.NotEqual(t, subscriberID("rider@example.com"), subscriberID("other@example.com"))
	assert.Len(t, subscriberID("rider@example.com"), 64)
}
