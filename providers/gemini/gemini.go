package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/cache"
	"google.golang.org/genai"
)

// New creates a new Gemini client
func New(log *slog.Logger, apiKey string) *Client {
	gc, _ := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	return &Client{
		gc:  gc,
		log: log,
		models: cache.Models(func(ctx context.Context) (models []*splitmd.Model, err error) {
			for model, err := range gc.Models.All(ctx) {
				if err != nil {
					return nil, fmt.Errorf("gemini: listing models: %w", err)
				}
				models = append(models, &splitmd.Model{
					Provider: "gemini",
					ID:       model.Name,
				})
			}
			return models, nil
		}),
	}
}

// Client implements the splitmd.Provider interface for Gemini
type Client struct {
	gc     *genai.Client
	log    *slog.Logger
	models func(ctx context.Context) ([]*splitmd.Model, error)
}

var _ splitmd.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "gemini"
}

// Models lists available models
func (c *Client) Models(ctx context.Context) ([]*splitmd.Model, error) {
	return c.models(ctx)
}

// Complete sends a single generate content request to Gemini
func (c *Client) Complete(ctx context.Context, req *splitmd.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("gemini: required model is empty")
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	res, err := c.gc.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", classify(err)
	}

	text := res.Text()
	if text == "" {
		return "", &splitmd.CompletionError{Provider: "gemini", Cause: splitmd.CauseEmpty}
	}
	return text, nil
}

// classify maps SDK errors to the completion error taxonomy
func classify(err error) error {
	var apierr genai.APIError
	if errors.As(err, &apierr) {
		return &splitmd.CompletionError{
			Provider: "gemini",
			Cause:    splitmd.CauseForStatus(apierr.Code),
			Err:      err,
		}
	}
	return &splitmd.CompletionError{
		Provider: "gemini",
		Cause:    splitmd.CauseNetwork,
		Err:      err,
	}
}
