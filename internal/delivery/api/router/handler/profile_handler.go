package handler

import (
	"net/http"

	"skatehubba/internal/delivery/api/response"
	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/entity"
	"skatehubba/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const avatarFormField = "avatar"

// UpdateProfileRequest omits a field to leave it unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

type ProfileResponse struct {
	OK      bool        `json:"ok"`
	Profile *MeResponse `json:"profile"`
}

type AvatarResponse struct {
	OK       bool   `json:"ok"`
	PhotoURL string `json:"photoURL"`
}

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// UpdateProfile handles PATCH /api/profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	uid, ok := deliverycontext.GetUID(c)
	if !ok {
		return domainerrors.ErrNoSession
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ProfileResponse{OK: true, Profile: toMeResponse(user)})
}

// UploadAvatar handles POST /api/profile/avatar with a multipart "avatar" file.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	uid, ok := deliverycontext.GetUID(c)
	if !ok {
		return domainerrors.ErrNoSession
	}

	fh, err := c.FormFile(avatarFormField)
	if err != nil {
		return domainerrors.ErrInvalidFile.WithMessage("Avatar file is required").WithDetails(err.Error())
	}

	file, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	user, err := h.uc.UploadAvatar(c.Request().Context(), uid, usecase.AvatarUpload{
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AvatarResponse{OK: true, PhotoURL: user.PhotoURL})
}

func toMeResponse(u *entity.User) *MeResponse {
	return &MeResponse{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Provider:    u.Provider,
	}
}
