package service

import (
	"context"

	"skatehubba/internal/domain/entity"
)

// ChatCompleter talks to a chat-completion model.
type ChatCompleter interface {
	// Complete returns the assistant reply for the conversation.
	Complete(ctx context.Context, messages []entity.ChatMessage) (*entity.ChatMessage, error)
}
