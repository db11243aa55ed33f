package impl

import (
	"context"
	"testing"
	"time"

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

type authServiceFixtures struct {
	service  usecase.AuthUsecase
	verifier *mockService.MockIdentityVerifier
	userRepo *mockRepo.MockUserRepository
	tokens   *mockService.MockSessionTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	verifier := mockService.NewMockIdentityVerifier(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	tokens := mockService.NewMockSessionTokenService(t)

	return authServiceFixtures{
		service: NewAuthService(AuthServiceParams{
			Verifier: verifier,
			UserRepo: userRepo,
			Tokens:   tokens,
			Logger:   newDiscardLogger(),
		}),
		verifier: verifier,
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func TestAuthService_CreateSession_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	identity := &entity.IdentityProfile{UID: "uid-1", Email: "kick@flip.com", DisplayName: "Kick", Provider: "google.com"}
	stored := &entity.User{UID: "uid-1", Email: "kick@flip.com", DisplayName: "Kick", Level: 1}
	expiresAt := time.Now().Add(2 * time.Hour)

	fx.verifier.EXPECT().VerifyIDToken(ctx, "id-token").Return(identity, nil)
	fx.userRepo.EXPECT().UpsertIdentity(ctx, identity).Return(stored, nil)
	fx.tokens.EXPECT().Issue("uid-1").Return("signed", expiresAt, nil)

	out, err := fx.service.CreateSession(ctx, " id-token ")

	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, expiresAt, out.ExpiresAt)
	assert.Equal(t, stored, out.User)
}

func TestAuthService_CreateSession_MissingToken(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.CreateSession(context.Background(), "   ")

	assert.ErrorIs(t, err, domainerrors.ErrMissingToken)
}

func TestAuthService_CreateSession_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.verifier.EXPECT().VerifyIDToken(ctx, "bad").Return(nil, errors.New("token expired"))

	_, err := fx.service.CreateSession(ctx, "bad")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	fx.userRepo.AssertNotCalled(t, "UpsertIdentity", mock.Anything, mock.Anything)
}

func TestAuthService_CreateSession_StorageFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	identity := &entity.IdentityProfile{UID: "uid-1"}

	fx.verifier.EXPECT().VerifyIDToken(ctx, "tok").Return(identity, nil)
	fx.userRepo.EXPECT().UpsertIdentity(ctx, identity).Return(nil, errors.New("firestore down"))

	_, err := fx.service.CreateSession(ctx, "tok")

	appErr, ok := errors.Cause(err).(domainerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "STORAGE_ERROR", appErr.ErrorCode())
	fx.tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuthService_CurrentUser(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{UID: "uid-1"}

	fx.userRepo.EXPECT().FindByUID(ctx, "uid-1").Return(user, nil)
	fx.userRepo.EXPECT().FindByUID(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	got, err := fx.service.CurrentUser(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = fx.service.CurrentUser(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
