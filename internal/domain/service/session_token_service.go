package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the application session token.
type SessionClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// SessionTokenService issues and validates application session tokens.
type SessionTokenService interface {
	// Issue signs a new session token for uid and reports when it expires.
	Issue(uid string) (token string, expiresAt time.Time, err error)

	// Validate parses a session token and returns its claims.
	Validate(token string) (*SessionClaims, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
