// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

const (
	// DefaultLevel is the level assigned to a profile on first sign-in.
	DefaultLevel = 1
)

// User is the profile document keyed by the Firebase uid.
// XP and Level are owned by gameplay features; this service only initialises them.
type User struct {
	UID         string    // Firebase Auth uid, also the document ID.
	Email       string    // Primary email reported by the identity provider.
	DisplayName string    // Public display name, editable by the user.
	PhotoURL    string    // Avatar URL, either from the provider or an uploaded avatar.
	Provider    string    // Sign-in provider of the last session, e.g. "password", "google.com".
	XP          int64     // Experience points.
	Level       int       // Current level.
	CreatedAt   time.Time // First sign-in.
	UpdatedAt   time.Time // Last modification.
}

// IdentityProfile is what a verified ID token tells us about the caller.
type IdentityProfile struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	Provider    string
}

// ProfileUpdate carries a partial profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// IsEmpty reports whether the update would change nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.PhotoURL == nil
}
