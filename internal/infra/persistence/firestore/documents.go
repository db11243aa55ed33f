// Package firestore implements the profile and mailing-list repositories on Cloud Firestore.
package firestore

import (
	"time"

	"skatehubba/internal/domain/entity"
)

const (
	usersCollection       = "users"
	subscribersCollection = "subscribers"
)

// userDocument is the stored shape of users/{uid}.
type userDocument struct {
	UID         string    `firestore:"uid"`
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	PhotoURL    string    `firestore:"photoURL"`
	Provider    string    `firestore:"provider"`
	XP          int64     `firestore:"xp"`
	Level       int       `firestore:"level"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		UID:         d.UID,
		Email:       d.Email,
		DisplayName: d.DisplayName,
		PhotoURL:    d.PhotoURL,
		Provider:    d.Provider,
		XP:          d.XP,
		Level:       d.Level,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// subscriberDocument is the stored shape of subscribers/{sha256(email)}.
type subscriberDocument struct {
	Email     string    `firestore:"email"`
	FirstName string    `firestore:"firstName,omitempty"`
	Source    string    `firestore:"source"`
	UserAgent string    `firestore:"userAgent,omitempty"`
	IPAddress string    `firestore:"ipAddress,omitempty"`
	Verified  bool      `firestore:"verified"`
	CreatedAt time.Time `firestore:"createdAt"`
}
