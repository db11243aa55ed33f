package impl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"skatehubba/internal/domain/entity"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/repository"
	mockRepo "skatehubba/internal/mocks/repository"
	mockService "skatehubba/internal/mocks/service"
	"skatehubba/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type profileServiceFixtures struct {
	service  usecase.ProfileUsecase
	userRepo *mockRepo.MockUserRepository
	storage  *mockService.MockAvatarStorage
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	storage := mockService.NewMockAvatarStorage(t)

	return profileServiceFixtures{
		service: NewProfileService(ProfileServiceParams{
			UserRepo: userRepo,
			Storage:  storage,
			Config:   newTestConfig(),
			Logger:   newDiscardLogger(),
		}),
		userRepo: userRepo,
		storage:  storage,
	}
}

func ptr[T any](v T) *T { return &v }

func TestProfileService_UpdateProfile_TrimsDisplayName(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	updated := &entity.User{UID: "uid-1", DisplayName: "Tony"}

	fx.userRepo.EXPECT().UpdateProfile(ctx, "uid-1", mock.MatchedBy(func(u entity.ProfileUpdate) bool {
		return u.DisplayName != nil && *u.DisplayName == "Tony" && u.PhotoURL == nil
	})).Return(updated, nil)

	got, err := fx.service.UpdateProfile(ctx, "uid-1", usecase.UpdateProfileInput{DisplayName: ptr("  Tony ")})

	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestProfileService_UpdateProfile_Validation(t *testing.T) {
	fx := createTestProfileService(t)

	tests := []struct {
		name  string
		input usecase.UpdateProfileInput
	}{
		{name: "nothing", input: usecase.UpdateProfileInput{}},
		{name: "blank name", input: usecase.UpdateProfileInput{DisplayName: ptr(" ")}},
		{name: "long name", input: usecase.UpdateProfileInput{DisplayName: ptr(strings.Repeat("n", 51))}},
		{name: "bad url", input: usecase.UpdateProfileInput{PhotoURL: ptr("javascript:alert(1)")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.UpdateProfile(context.Background(), "uid-1", tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		})
	}
}

func TestProfileService_UpdateProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().UpdateProfile(ctx, "ghost", mock.Anything).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.UpdateProfile(ctx, "ghost", usecase.UpdateProfileInput{DisplayName: ptr("x")})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UploadAvatar_Success(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 100)...)

	var uploaded []byte
	fx.storage.EXPECT().
		Upload(ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "avatars/uid-1/") && strings.HasSuffix(key, ".png")
		}), "image/png", mock.Anything).
		RunAndReturn(func(_ context.Context, key, _ string, body io.Reader) (string, error) {
			var err error
			uploaded, err = io.ReadAll(body)

			return "https://cdn.example.com/" + key, err
		})
	fx.userRepo.EXPECT().UpdateProfile(ctx, "uid-1", mock.MatchedBy(func(u entity.ProfileUpdate) bool {
		return u.PhotoURL != nil && strings.HasPrefix(*u.PhotoURL, "https://cdn.example.com/avatars/uid-1/")
	})).Return(&entity.User{UID: "uid-1", PhotoURL: "https://cdn.example.com/avatars/uid-1/x.png"}, nil)

	user, err := fx.service.UploadAvatar(ctx, "uid-1", usecase.AvatarUpload{
		ContentType: "image/png",
		Size:        int64(len(content)),
		Body:        bytes.NewReader(content),
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, content, uploaded)
}

func TestProfileService_UploadAvatar_RejectsNonImage(t *testing.T) {
	fx := createTestProfileService(t)
	body := []byte("<html><script>alert(1)</script></html>")

	_, err := fx.service.UploadAvatar(context.Background(), "uid-1", usecase.AvatarUpload{
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidFile)
}

func TestProfileService_UploadAvatar_TooLarge(t *testing.T) {
	fx := createTestProfileService(t)

	_, err := fx.service.UploadAvatar(context.Background(), "uid-1", usecase.AvatarUpload{
		ContentType: "image/png",
		Size:        2048,
		Body:        bytes.NewReader(pngHeader),
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidFile)
	assert.Contains(t, err.(domainerrors.AppError).Message(), "1.0 KB")
}

func TestProfileService_UploadAvatar_StorageFailure(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.storage.EXPECT().Upload(ctx, mock.Anything, "image/png", mock.Anything).Return("", errors.New("bucket denied"))

	_, err := fx.service.UploadAvatar(ctx, "uid-1", usecase.AvatarUpload{
		Size: int64(len(pngHeader)),
		Body: bytes.NewReader(pngHeader),
	})

	appErr, ok := err.(domainerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "STORAGE_ERROR", appErr.ErrorCode())
}
