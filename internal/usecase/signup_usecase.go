package usecase

import "context"

// SignupInput is a landing-page signup after the transport-level
// anti-abuse checks have passed.
type SignupInput struct {
	Email     string
	Source    string
	UserAgent string
	IPAddress string
}

// SignupOutput reports whether a new record was written.
type SignupOutput struct {
	Email   string
	Created bool
}

type SignupUsecase interface {
	// SecureSignup normalizes and validates the email and stores it.
	// Re-submitting a known email succeeds with Created=false.
	SecureSignup(ctx context.Context, input SignupInput) (*SignupOutput, error)
}
