package usecase

import (
	"context"

	"skatehubba/internal/domain/entity"
)

// ChatUsecase proxies a conversation to the assistant model.
type ChatUsecase interface {
	// Reply validates the conversation and returns the assistant's answer.
	Reply(ctx context.Context, messages []entity.ChatMessage) (*entity.ChatMessage, error)
}
