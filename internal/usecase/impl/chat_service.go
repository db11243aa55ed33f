package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"skatehubba/config"
	deliverycontext "skatehubba/internal/delivery/context"
	"skatehubba/internal/domain/entity"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/service"
	"skatehubba/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxChatMessages      = 20
	maxChatMessageLength = 4000
)

var chatRoles = map[string]struct{}{
	entity.ChatRoleSystem:    {},
	entity.ChatRoleUser:      {},
	entity.ChatRoleAssistant: {},
}

type chatService struct {
	completer    service.ChatCompleter
	systemPrompt string
	logger       *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
// Completer is optional; without it every call fails with CHAT_UNAVAILABLE.
type ChatServiceParams struct {
	fx.In

	Completer service.ChatCompleter `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		completer:    params.Completer,
		systemPrompt: params.Config.Chat.SystemPrompt,
		logger:       params.Logger,
	}
}

// Reply validates the conversation, prepends the system prompt and
// forwards it to the completion model.
func (srv *chatService) Reply(ctx context.Context, messages []entity.ChatMessage) (*entity.ChatMessage, error) {
	if err := validateChatMessages(messages); err != nil {
		return nil, err
	}

	if srv.completer == nil {
		return nil, domainerrors.ErrChatUnavailable
	}

	conversation := make([]entity.ChatMessage, 0, len(messages)+1)
	conversation = append(conversation, entity.ChatMessage{Role: entity.ChatRoleSystem, Content: srv.systemPrompt})
	conversation = append(conversation, messages...)

	reply, err := srv.completer.Complete(ctx, conversation)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, errors.Wrap(err, "chat request canceled")
		}

		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).
			Error("Chat completion failed", slog.Any("error", err))

		return nil, domainerrors.ErrChatUpstream.WithDetails(err.Error())
	}

	return reply, nil
}

func validateChatMessages(messages []entity.ChatMessage) error {
	if len(messages) == 0 || len(messages) > maxChatMessages {
		return domainerrors.ErrInvalidMessages.
			WithMessage(fmt.Sprintf("Conversation must contain between 1 and %d messages", maxChatMessages))
	}

	for i, msg := range messages {
		if _, ok := chatRoles[msg.Role]; !ok {
			return domainerrors.ErrInvalidMessages.WithDetails(fmt.Sprintf("message %d: unknown role %q", i, msg.Role))
		}
		if strings.TrimSpace(msg.Content) == "" {
			return domainerrors.ErrInvalidMessages.WithDetails(fmt.Sprintf("message %d: empty content", i))
		}
		if utf8.RuneCountInString(msg.Content) > maxChatMessageLength {
			return domainerrors.ErrInvalidMessages.
				WithMessage(fmt.Sprintf("Messages are limited to %d characters", maxChatMessageLength))
		}
	}

	return nil
}
