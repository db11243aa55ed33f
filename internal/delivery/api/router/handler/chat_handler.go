package handler

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"skatehubba/internal/delivery/api/response"
	"skatehubba/internal/delivery/api/validator"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/entity"
	"skatehubba/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type ChatRequest struct {
	Messages []entity.ChatMessage `json:"messages" validate:"required,min=1"`
}

type ChatResponse struct {
	OK    bool                `json:"ok"`
	Reply *entity.ChatMessage `json:"reply"`
}

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Chat handles POST /api/ai/chat.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidMessages.WithDetails(err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidMessages.WithDetails(validationDetails(err))
	}

	reply, err := h.uc.Reply(c.Request().Context(), req.Messages)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ChatResponse{OK: true, Reply: reply})
}

// validationDetails renders validator failures as sorted "field:tag" pairs.
func validationDetails(err error) string {
	fields := validator.FieldErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	pairs := make([]string, 0, len(fields))
	for field, tag := range fields {
		pairs = append(pairs, fmt.Sprintf("%s:%s", field, tag))
	}
	sort.Strings(pairs)

	return strings.Join(pairs, ", ")
}
