package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/cache"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// New creates a new OpenAI client
func New(log *slog.Logger, apiKey string) *Client {
	oc := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		oc:  &oc,
		log: log,
		models: cache.Models(func(ctx context.Context) ([]*splitmd.Model, error) {
			page, err := oc.Models.List(ctx)
			if err != nil {
				return nil, fmt.Errorf("openai: listing models: %w", err)
			}
			var models []*splitmd.Model
			for _, m := range page.Data {
				models = append(models, &splitmd.Model{
					Provider: "openai",
					ID:       m.ID,
				})
			}
			return models, nil
		}),
	}
}

// Client implements the splitmd.Provider interface for OpenAI
type Client struct {
	oc     *openai.Client
	log    *slog.Logger
	models func(ctx context.Context) ([]*splitmd.Model, error)
}

var _ splitmd.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "openai"
}

// Models lists available models
func (c *Client) Models(ctx context.Context) ([]*splitmd.Model, error) {
	return c.models(ctx)
}

// Complete sends a single chat completion request to OpenAI
func (c *Client) Complete(ctx context.Context, req *splitmd.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("openai: required model is empty")
	}

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	res, err := c.oc.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", &splitmd.CompletionError{Provider: "openai", Cause: splitmd.CauseEmpty}
	}
	return res.Choices[0].Message.Content, nil
}

// classify maps SDK errors to the completion error taxonomy
func classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &splitmd.CompletionError{
			Provider: "openai",
			Cause:    splitmd.CauseForStatus(apierr.StatusCode),
			Err:      err,
		}
	}
	return &splitmd.CompletionError{
		Provider: "openai",
		Cause:    splitmd.CauseNetwork,
		Err:      err,
	}
}
