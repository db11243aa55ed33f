package usecase

import (
	"context"
	"io"

	"skatehubba/internal/domain/entity"
)

// UpdateProfileInput carries the editable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	PhotoURL    *string
}

// AvatarUpload is an image received from a multipart form.
type AvatarUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// ProfileUsecase edits the caller's own profile.
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error)
	UploadAvatar(ctx context.Context, uid string, upload AvatarUpload) (*entity.User, error)
}
