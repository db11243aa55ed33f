package impl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"skatehubba/config"
	deliverycontext "skatehubba/internal/delivery/context"
	"skatehubba/internal/domain/entity"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/repository"
	"skatehubba/internal/domain/service"
	"skatehubba/internal/usecase"
	"skatehubba/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxDisplayNameLength = 50
	sniffLength          = 512
)

// avatarExtensions maps accepted image types to their object key suffix.
var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type profileService struct {
	userRepo       repository.UserRepository
	storage        service.AvatarStorage
	maxAvatarBytes int64
	logger         *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Storage  service.AvatarStorage
	Config   *config.Config
	Logger   *slog.Logger
}

func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	var maxBytes int64 = 5 << 20
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.MaxAvatarBytes > 0 {
		maxBytes = params.Config.Storage.MaxAvatarBytes
	}

	return &profileService{
		userRepo:       params.UserRepo,
		storage:        params.Storage,
		maxAvatarBytes: maxBytes,
		logger:         params.Logger,
	}
}

// UpdateProfile merges the supplied fields into the caller's profile.
func (srv *profileService) UpdateProfile(ctx context.Context, uid string, input usecase.UpdateProfileInput) (*entity.User, error) {
	update := entity.ProfileUpdate{}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
			return nil, domainerrors.ErrInvalidInput.
				WithMessage(fmt.Sprintf("Display name must be 1 to %d characters", maxDisplayNameLength))
		}
		update.DisplayName = &name
	}

	if input.PhotoURL != nil {
		photoURL := strings.TrimSpace(*input.PhotoURL)
		if err := validate.Var(photoURL, "required,http_url,max=2048"); err != nil {
			return nil, domainerrors.ErrInvalidInput.WithMessage("Photo URL must be an http(s) URL")
		}
		update.PhotoURL = &photoURL
	}

	if update.IsEmpty() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Nothing to update")
	}

	return srv.applyUpdate(ctx, uid, update)
}

// UploadAvatar stores an image under avatars/{uid}/ and points the
// profile photo at it. The content type is sniffed, not trusted.
func (srv *profileService) UploadAvatar(ctx context.Context, uid string, upload usecase.AvatarUpload) (*entity.User, error) {
	if upload.Body == nil || upload.Size <= 0 {
		return nil, domainerrors.ErrInvalidFile.WithMessage("Avatar file is required")
	}
	if upload.Size > srv.maxAvatarBytes {
		return nil, domainerrors.ErrInvalidFile.
			WithMessage("Avatar must be " + util.FormatBytes(srv.maxAvatarBytes) + " or smaller")
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to read avatar")
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, domainerrors.ErrInvalidFile.
			WithMessage("Avatar must be a PNG, JPEG, WebP or GIF image").
			WithDetails("detected " + contentType + ", declared " + upload.ContentType)
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", uid, uuid.New().String(), ext)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), upload.Body), srv.maxAvatarBytes)

	photoURL, err := srv.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "upload avatar")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Avatar uploaded",
		slog.String("uid", uid),
		slog.String("key", key),
		slog.Int64("size", upload.Size),
	)

	return srv.applyUpdate(ctx, uid, entity.ProfileUpdate{PhotoURL: &photoURL})
}

func (srv *profileService) applyUpdate(ctx context.Context, uid string, update entity.ProfileUpdate) (*entity.User, error) {
	user, err := srv.userRepo.UpdateProfile(ctx, uid, update)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewStorageError(err, "update user profile")
	}

	return user, nil
}
