package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	deliverycontext "skatehubba/internal/delivery/context"
	"skatehubba/internal/domain/entity"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/repository"
	"skatehubba/internal/domain/service"
	"skatehubba/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxFirstNameLength = 100

type subscribeService struct {
	subscriberRepo repository.SubscriberRepository
	mailer         service.Mailer
	logger         *slog.Logger
	now            func() time.Time
}

// SubscribeServiceParams holds dependencies for SubscribeService, injected by Fx.
type SubscribeServiceParams struct {
	fx.In

	SubscriberRepo repository.SubscriberRepository
	Mailer         service.Mailer
	Logger         *slog.Logger
}

func NewSubscribeService(params SubscribeServiceParams) usecase.SubscribeUsecase {
	return &subscribeService{
		subscriberRepo: params.SubscriberRepo,
		mailer:         params.Mailer,
		logger:         params.Logger,
		now:            time.Now,
	}
}

func (srv *subscribeService) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Subscribe adds an address to the mailing list. A known address reports
// status "exists" and sends no mail.
func (srv *subscribeService) Subscribe(ctx context.Context, input usecase.SubscribeInput) (*usecase.SubscribeOutput, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(input.FirstName)
	if utf8.RuneCountInString(firstName) > maxFirstNameLength {
		return nil, domainerrors.ErrInvalidInput.WithMessage("First name is too long")
	}

	subscriber := &entity.Subscriber{
		Email:     email,
		FirstName: firstName,
		Source:    normalizeSource(input.Source),
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		CreatedAt: srv.now().UTC(),
	}

	logger := srv.getLogger(ctx).With(maskEmail(email))

	if err := srv.subscriberRepo.Create(ctx, subscriber); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.Info("Subscriber already exists")

			return &usecase.SubscribeOutput{Status: usecase.SubscribeStatusExists}, nil
		}

		return nil, domainerrors.NewStorageError(err, "create subscriber")
	}

	if err := srv.mailer.SendSubscribeConfirmation(ctx, email, firstName); err != nil {
		logger.Warn("Failed to send subscribe confirmation", slog.Any("error", err))
	}

	logger.Info("Subscriber created")

	return &usecase.SubscribeOutput{Status: usecase.SubscribeStatusCreated}, nil
}
