package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/cache"
)

// maxTokens bounds the reply. Splitting returns the full document, so this
// needs to be generous.
const maxTokens = 8192

// New creates a new Anthropic client
func New(log *slog.Logger, apiKey string) *Client {
	ac := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		ac:  &ac,
		log: log,
		models: cache.Models(func(ctx context.Context) (models []*splitmd.Model, err error) {
			acmodels, err := ac.Models.List(ctx, anthropic.ModelListParams{})
			if err != nil {
				return nil, fmt.Errorf("anthropic: listing models: %w", err)
			}
			for _, model := range acmodels.Data {
				models = append(models, &splitmd.Model{
					Provider: "anthropic",
					ID:       model.ID,
				})
			}
			return models, nil
		}),
	}
}

// Client implements the splitmd.Provider interface for Anthropic
type Client struct {
	ac     *anthropic.Client
	log    *slog.Logger
	models func(ctx context.Context) ([]*splitmd.Model, error)
}

var _ splitmd.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "anthropic"
}

// Models lists available models
func (c *Client) Models(ctx context.Context) ([]*splitmd.Model, error) {
	return c.models(ctx)
}

// Complete sends a single message request to Anthropic
func (c *Client) Complete(ctx context.Context, req *splitmd.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("anthropic: required model is empty")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.ac.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(text.Text)
		}
	}
	if content.Len() == 0 {
		return "", &splitmd.CompletionError{Provider: "anthropic", Cause: splitmd.CauseEmpty}
	}
	return content.String(), nil
}

// classify maps SDK errors to the completion error taxonomy
func classify(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return &splitmd.CompletionError{
			Provider: "anthropic",
			Cause:    splitmd.CauseForStatus(apierr.StatusCode),
			Err:      err,
		}
	}
	return &splitmd.CompletionError{
		Provider: "anthropic",
		Cause:    splitmd.CauseNetwork,
		Err:      err,
	}
}
