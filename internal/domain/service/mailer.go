package service

import "context"

// Mailer sends transactional email.
type Mailer interface {
	// SendWelcome greets a new secure-signup address.
	SendWelcome(ctx context.Context, email, source string) error

	// SendSubscribeConfirmation confirms a mailing-list subscription.
	SendSubscribeConfirmation(ctx context.Context, email, firstName string) error
}
