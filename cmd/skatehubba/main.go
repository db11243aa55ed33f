package main

import (
	"context"
	"log/slog"
	"os"

	"skatehubba/config"
	"skatehubba/internal/delivery"
	"skatehubba/internal/delivery/api"
	"skatehubba/internal/delivery/api/middleware"
	"skatehubba/internal/delivery/api/router/handler"
	"skatehubba/internal/infra/auth"
	authfirebase "skatehubba/internal/infra/auth/firebase"
	"skatehubba/internal/infra/cache"
	"skatehubba/internal/infra/chat"
	"skatehubba/internal/infra/firebase"
	logs "skatehubba/internal/infra/log"
	"skatehubba/internal/infra/mail"
	"skatehubba/internal/infra/observability"
	"skatehubba/internal/infra/persistence/firestore"
	"skatehubba/internal/infra/persistence/postgres"
	"skatehubba/internal/infra/pubsub"
	"skatehubba/internal/infra/ratelimit"
	"skatehubba/internal/infra/storage"
	"skatehubba/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		firebase.Module,
		cache.Module,
		ratelimit.Module,
		pubsub.Module,
		storage.Module,
		mail.Module,
		chat.Module,
		observability.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewUserRepository,
			firestore.NewSubscriberRepository,
			postgres.NewSignupRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			authfirebase.NewIdentityVerifier,
			auth.NewSessionTokenService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewSignupService,
			impl.NewSubscribeService,
			impl.NewChatService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionGuard,
			middleware.NewUserAgentFilter,
			middleware.NewRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewSignupHandler,
			handler.NewSubscribeHandler,
			handler.NewChatHandler,
			handler.NewProfileHandler,
			handler.NewAvatarHandler,
			handler.NewDebugHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
