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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxSourceLength = 64

type signupService struct {
	signupRepo repository.SignupRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// SignupServiceParams holds dependencies for SignupService, injected by Fx.
type SignupServiceParams struct {
	fx.In

	SignupRepo repository.SignupRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

func NewSignupService(params SignupServiceParams) usecase.SignupUsecase {
	return &signupService{
		signupRepo: params.SignupRepo,
		publisher:  params.Publisher,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *signupService) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SecureSignup stores a landing-page signup. Duplicates are reported as
// success so the form cannot be used to probe which emails are known.
func (srv *signupService) SecureSignup(ctx context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	signup := &entity.Signup{
		ID:        uuid.New(),
		Email:     email,
		Source:    normalizeSource(input.Source),
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		CreatedAt: srv.now().UTC(),
	}

	logger := srv.getLogger(ctx).With(maskEmail(email), slog.String("ip", input.IPAddress))

	if err := srv.signupRepo.Create(ctx, signup); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.Info("Duplicate signup suppressed")

			return &usecase.SignupOutput{Email: email, Created: false}, nil
		}

		return nil, domainerrors.NewStorageError(err, "insert signup")
	}

	logger.Info("Signup stored", slog.String("signup_id", signup.ID.String()))

	event := &service.SignupEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		SignupID:  signup.ID.String(),
		Email:     signup.Email,
		Source:    signup.Source,
		CreatedAt: signup.CreatedAt,
	}
	if err := srv.publisher.PublishSignupEvent(ctx, event); err != nil {
		logger.Error("Failed to publish signup event", slog.Any("error", err))
	}

	return &usecase.SignupOutput{Email: email, Created: true}, nil
}

func normalizeSource(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return entity.DefaultSignupSource
	}
	if utf8.RuneCountInString(source) > maxSourceLength {
		source = string([]rune(source)[:maxSourceLength])
	}

	return source
}
