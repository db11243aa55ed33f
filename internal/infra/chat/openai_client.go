// Package chat implements service.ChatCompleter against any OpenAI-compatible
// chat completions endpoint.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"skatehubba/config"
	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	completionsPath  = "/chat/completions"
	maxErrorBodySize = 2048
	defaultTimeout   = 30 * time.Second
)

// ErrEmptyCompletion is returned when the upstream answers without choices.
var ErrEmptyCompletion = errors.New("chat completion returned no choices")

type completionRequest struct {
	Model    string               `json:"model"`
	Messages []entity.ChatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message entity.ChatMessage `json:"message"`
	} `json:"choices"`
}

type openAIClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient returns a completer posting to {baseURL}/chat/completions.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) service.ChatCompleter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &openAIClient{
		endpoint:   strings.TrimRight(baseURL, "/") + completionsPath,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *openAIClient) Complete(ctx context.Context, messages []entity.ChatMessage) (*entity.ChatMessage, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

		return nil, errors.Errorf("chat completion returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "failed to decode chat completion")
	}
	if len(decoded.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	reply := decoded.Choices[0].Message
	if reply.Role == "" {
		reply.Role = entity.ChatRoleAssistant
	}

	return &reply, nil
}

// Params holds dependencies for the ChatCompleter, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New returns nil when chat.baseUrl or chat.apiKey is unset, which the chat
// usecase reports as unavailable.
func New(params Params) service.ChatCompleter {
	cfg := params.Config.Chat
	if cfg == nil || cfg.BaseURL == "" || cfg.APIKey == "" {
		params.Logger.Warn("Chat upstream not configured, /api/ai/chat will answer 503")

		return nil
	}

	params.Logger.Info("Chat upstream configured",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model),
	)

	return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout)
}

// Module provides the chat FX module
var Module = fx.Options(
	fx.Provide(New),
)
