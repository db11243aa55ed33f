package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "skatehubba/internal/delivery/context"
	"skatehubba/internal/domain/entity"
	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/repository"
	"skatehubba/internal/domain/service"
	"skatehubba/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type authService struct {
	verifier service.IdentityVerifier
	userRepo repository.UserRepository
	tokens   service.SessionTokenService
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Verifier service.IdentityVerifier
	UserRepo repository.UserRepository
	Tokens   service.SessionTokenService
	Logger   *slog.Logger
}

func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		verifier: params.Verifier,
		userRepo: params.UserRepo,
		tokens:   params.Tokens,
		logger:   params.Logger,
	}
}

func (srv *authService) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSession exchanges a Firebase ID token for an application session.
// The profile write happens before signing; a signing failure leaves the
// upserted profile in place.
func (srv *authService) CreateSession(ctx context.Context, idToken string) (*usecase.CreateSessionOutput, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, domainerrors.ErrMissingToken
	}

	identity, err := srv.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.getLogger(ctx).Warn("ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken.WithDetails(err.Error())
	}

	user, err := srv.userRepo.UpsertIdentity(ctx, identity)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "upsert user profile")
	}

	token, expiresAt, err := srv.tokens.Issue(identity.UID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	srv.getLogger(ctx).Info("Session issued",
		slog.String("uid", identity.UID),
		slog.String("provider", identity.Provider),
	)

	return &usecase.CreateSessionOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// CurrentUser loads the profile document of uid.
func (srv *authService) CurrentUser(ctx context.Context, uid string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewStorageError(err, "find user profile")
	}

	return user, nil
}
