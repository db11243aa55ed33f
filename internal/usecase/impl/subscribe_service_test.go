package impl

import (
	"context"
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

func createTestSubscribeService(t *testing.T) (usecase.SubscribeUsecase, *mockRepo.MockSubscriberRepository, *mockService.MockMailer) {
	repo := mockRepo.NewMockSubscriberRepository(t)
	mailer := mockService.NewMockMailer(t)

	return NewSubscribeService(SubscribeServiceParams{
		SubscriberRepo: repo,
		Mailer:         mailer,
		Logger:         newDiscardLogger(),
	}), repo, mailer
}

func TestSubscribeService_Created(t *testing.T) {
	srv, repo, mailer := createTestSubscribeService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, mock.MatchedBy(func(s *entity.Subscriber) bool {
		return s.Email == "rider@example.com" && s.FirstName == "Rider" && !s.Verified
	})).Return(nil)
	mailer.EXPECT().SendSubscribeConfirmation(ctx, "rider@example.com", "Rider").Return(nil)

	out, err := srv.Subscribe(ctx, usecase.SubscribeInput{Email: "Rider@Example.com", FirstName: " Rider "})

	require.NoError(t, err)
	assert.Equal(t, usecase.SubscribeStatusCreated, out.Status)
}

func TestSubscribeService_Exists(t *testing.T) {
	srv, repo, mailer := createTestSubscribeService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateEmail)

	out, err := srv.Subscribe(ctx, usecase.SubscribeInput{Email: "rider@example.com"})

	require.NoError(t, err)
	assert.Equal(t, usecase.SubscribeStatusExists, out.Status)
	mailer.AssertNotCalled(t, "SendSubscribeConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribeService_MailFailureIsLoggedOnly(t *testing.T) {
	srv, repo, mailer := createTestSubscribeService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	mailer.EXPECT().SendSubscribeConfirmation(ctx, "rider@example.com", "").Return(errors.New("resend 500"))

	out, err := srv.Subscribe(ctx, usecase.SubscribeInput{Email: "rider@example.com"})

	require.NoError(t, err)
	assert.Equal(t, usecase.SubscribeStatusCreated, out.Status)
}

func TestSubscribeService_Validation(t *testing.T) {
	srv, _, _ := createTestSubscribeService(t)

	_, err := srv.Subscribe(context.Background(), usecase.SubscribeInput{Email: "nope"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidEmail)

	_, err = srv.Subscribe(context.Background(), usecase.SubscribeInput{
		Email:     "rider@example.com",
		FirstName: strings.Repeat("x", 101),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestSubscribeService_StorageFailure(t *testing.T) {
	srv, repo, _ := createTestSubscribeService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("unavailable"))

	_, err := srv.Subscribe(ctx, usecase.SubscribeInput{Email: "rider@example.com"})

	appErr, ok := err.(domainerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "STORAGE_ERROR", appErr.ErrorCode())
}
