// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"skatehubba/config"
	"skatehubba/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minSecretLength = 32

// sessionTokenService signs session tokens with HS256.
type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionTokenParams holds dependencies for the session token service, injected by Fx.
type SessionTokenParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSessionTokenService builds the token service from session.secret.
// Production refuses to start without a secret; development falls back to
// a random per-process secret, so sessions do not survive a restart.
func NewSessionTokenService(params SessionTokenParams) (service.SessionTokenService, error) {
	cfg := params.Config.Session
	if cfg == nil {
		return nil, errors.New("session configuration is missing")
	}

	secret := cfg.Secret
	if secret == "" {
		if params.Config.IsProduction() {
			return nil, errors.New("session secret must be provided in production")
		}

		buf := make([]byte, minSecretLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, errors.Wrap(err, "failed to generate session secret")
		}
		secret = hex.EncodeToString(buf)
		params.Logger.Warn("APP_JWT_SECRET not set, using an ephemeral session secret")
	} else if len(secret) < minSecretLength {
		params.Logger.Warn("Session secret is shorter than recommended", slog.Int("min_length", minSecretLength))
	}

	return newSessionTokenService(secret, cfg.TTL), nil
}

func newSessionTokenService(secret string, ttl time.Duration) *sessionTokenService {
	return &sessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs {uid, iat, exp}.
func (s *sessionTokenService) Issue(uid string) (string, time.Time, error) {
	if uid == "" {
		return "", time.Time{}, errors.New("uid is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &service.SessionClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign session token")
	}

	return token, expiresAt, nil
}

// Validate accepts only HS256 tokens signed with our secret that carry a uid
// and an unexpired exp claim.
func (s *sessionTokenService) Validate(tokenString string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if !token.Valid || claims.UID == "" {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}

func (s *sessionTokenService) TTL() time.Duration {
	return s.ttl
}
