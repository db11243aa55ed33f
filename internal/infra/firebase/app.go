// Package firebase wires the Firebase Admin SDK app and the clients derived from it.
package firebase

import (
	"context"
	"log/slog"

	"skatehubba/config"
	"skatehubba/internal/domain/lifecycle"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// AppParams holds dependencies for the Firebase app, injected by Fx.
type AppParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewApp initializes the Admin SDK. Without a credentials file it relies on
// Application Default Credentials, which is what Cloud Run provides.
func NewApp(params AppParams) (*firebase.App, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firebase.projectId must be configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	params.Logger.Info("Firebase app initialized", slog.String("project_id", cfg.ProjectID))

	return app, nil
}

// NewAuthClient returns the Admin Auth client used to verify ID tokens.
func NewAuthClient(app *firebase.App) (*auth.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return client, nil
}

// NewFirestoreClient returns a Firestore client closed on shutdown.
func NewFirestoreClient(lc fx.Lifecycle, app *firebase.App, logger *slog.Logger) (*firestore.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing Firestore client")

			return client.Close()
		},
	})

	return client, nil
}

// Module provides the Firebase app and its clients.
var Module = fx.Module("firebase",
	fx.Provide(
		NewApp,
		NewAuthClient,
		NewFirestoreClient,
	),
)
