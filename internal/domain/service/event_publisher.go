package service

import (
	"context"
	"time"
)

// SignupEvent is published after a new secure signup is stored and is
// consumed by the mail worker.
type SignupEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	SignupID  string    `json:"signup_id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishSignupEvent publishes a signup event for async processing.
	PublishSignupEvent(ctx context.Context, event *SignupEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
