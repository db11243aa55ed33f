package repository

import (
	"context"
	"errors"

	"skatehubba/internal/domain/entity"
)

// ErrDuplicateEmail is returned by create operations when the normalized
// email is already on record. Callers treat it as success.
var ErrDuplicateEmail = errors.New("email already registered")

// SubscriberRepository persists mailing-list subscribers.
type SubscriberRepository interface {
	// Create stores a subscriber, returning ErrDuplicateEmail if the email exists.
	Create(ctx context.Context, subscriber *entity.Subscriber) error
}
