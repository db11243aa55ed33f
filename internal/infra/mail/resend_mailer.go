// Package mail sends transactional email through Resend.
package mail

import (
	"context"
	"log/slog"

	"skatehubba/config"
	"skatehubba/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v3"
	"go.uber.org/fx"
)

const (
	senderName        = "SkateHubba"
	defaultFromEmail  = "hello@skatehubba.com"
	welcomeSubject    = "You're on the SkateHubba list"
	subscribedSubject = "Thanks for subscribing to SkateHubba"
)

type resendMailer struct {
	client *resend.Client
	from   string
	appURL string
}

// NewResendMailer builds a Mailer on an existing Resend client.
func NewResendMailer(client *resend.Client, fromEmail, appURL string) service.Mailer {
	if fromEmail == "" {
		fromEmail = defaultFromEmail
	}

	return &resendMailer{
		client: client,
		from:   senderName + " <" + fromEmail + ">",
		appURL: appURL,
	}
}

func (m *resendMailer) SendWelcome(ctx context.Context, email, source string) error {
	html, err := render(welcomeTemplate, templateData{AppURL: m.appURL, Source: source})
	if err != nil {
		return err
	}

	return m.send(ctx, email, welcomeSubject, html, "welcome")
}

func (m *resendMailer) SendSubscribeConfirmation(ctx context.Context, email, firstName string) error {
	html, err := render(confirmationTemplate, templateData{AppURL: m.appURL, FirstName: firstName})
	if err != nil {
		return err
	}

	return m.send(ctx, email, subscribedSubject, html, "subscribe")
}

func (m *resendMailer) send(ctx context.Context, to, subject, html, category string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Tags:    []resend.Tag{{Name: "category", Value: category}},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", category)
	}

	return nil
}

// logMailer stands in when no Resend key is configured.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) SendWelcome(_ context.Context, email, source string) error {
	m.logger.Info("Mail disabled, skipping welcome email", slog.String("to", email), slog.String("source", source))

	return nil
}

func (m *logMailer) SendSubscribeConfirmation(_ context.Context, email, _ string) error {
	m.logger.Info("Mail disabled, skipping subscribe confirmation", slog.String("to", email))

	return nil
}

// Params holds dependencies for the Mailer, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New returns a Resend mailer, or a logging stand-in without mail.resendApiKey.
func New(params Params) service.Mailer {
	cfg := params.Config.Mail
	if cfg == nil || cfg.ResendAPIKey == "" {
		params.Logger.Warn("mail.resendApiKey not set, emails will only be logged")

		return &logMailer{logger: params.Logger}
	}

	return NewResendMailer(resend.NewClient(cfg.ResendAPIKey), cfg.From, cfg.AppURL)
}

// Module provides the mail FX module
var Module = fx.Options(
	fx.Provide(New),
)
