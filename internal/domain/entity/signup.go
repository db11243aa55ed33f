package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSignupSource is recorded when the landing form does not say where it lives.
const DefaultSignupSource = "landing"

// Signup is an append-only marketing record created by the secure signup form.
type Signup struct {
	ID        uuid.UUID
	Email     string
	Source    string
	UserAgent string
	IPAddress string
	Verified  bool
	CreatedAt time.Time
}
