package handler

import (
	"net/http"

	"skatehubba/internal/delivery/api/response"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/usecase"
	"skatehubba/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type SubscribeRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Source    string `json:"source"`
}

type SubscribeResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

type SubscribeHandler struct {
	uc usecase.SubscribeUsecase
}

func NewSubscribeHandler(uc usecase.SubscribeUsecase) *SubscribeHandler {
	return &SubscribeHandler{uc: uc}
}

// Subscribe handles POST /api/subscribe.
func (h *SubscribeHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	r := c.Request()
	output, err := h.uc.Subscribe(r.Context(), usecase.SubscribeInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		Source:    req.Source,
		UserAgent: r.UserAgent(),
		IPAddress: util.ClientIP(r),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	msg := "Subscribed! Check your inbox."
	if output.Status == usecase.SubscribeStatusExists {
		msg = "You're already on the list."
	}

	return response.Success(c, http.StatusOK, SubscribeResponse{
		OK:     true,
		Status: output.Status,
		Msg:    msg,
	})
}
