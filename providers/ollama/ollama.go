package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/cache"
	ollama "github.com/ollama/ollama/api"
)

// Default returns a client against a local Ollama on the default port
func Default(log *slog.Logger) *Client {
	return New(log, &url.URL{
		Scheme: "http",
		Host:   "localhost:11434",
	})
}

// New creates a new Ollama client
func New(log *slog.Logger, host *url.URL) *Client {
	oc := ollama.NewClient(host, http.DefaultClient)
	return &Client{
		oc:  oc,
		log: log,
		models: cache.Models(func(ctx context.Context) ([]*splitmd.Model, error) {
			res, err := oc.List(ctx)
			if err != nil {
				return nil, fmt.Errorf("ollama: listing models: %w", err)
			}
			models := make([]*splitmd.Model, len(res.Models))
			for i, m := range res.Models {
				models[i] = &splitmd.Model{
					Provider: "ollama",
					ID:       m.Model,
				}
			}
			return models, nil
		}),
	}
}

// Client implements the splitmd.Provider interface for Ollama
type Client struct {
	oc     *ollama.Client
	log    *slog.Logger
	models func(ctx context.Context) ([]*splitmd.Model, error)
}

var _ splitmd.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "ollama"
}

// Models lists locally available models
func (c *Client) Models(ctx context.Context) ([]*splitmd.Model, error) {
	return c.models(ctx)
}

// Complete sends a single non-streaming chat request to Ollama
func (c *Client) Complete(ctx context.Context, req *splitmd.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("ollama: required model is empty")
	}

	messages := []ollama.Message{}
	if req.System != "" {
		messages = append(messages, ollama.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, ollama.Message{Role: "user", Content: req.Prompt})

	stream := false
	var content strings.Builder
	err := c.oc.Chat(ctx, &ollama.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   &stream,
	}, func(res ollama.ChatResponse) error {
		content.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		return "", classify(err)
	}

	if content.Len() == 0 {
		return "", &splitmd.CompletionError{Provider: "ollama", Cause: splitmd.CauseEmpty}
	}
	return content.String(), nil
}

// classify maps SDK errors to the completion error taxonomy
func classify(err error) error {
	var statusErr ollama.StatusError
	if errors.As(err, &statusErr) {
		return &splitmd.CompletionError{
			Provider: "ollama",
			Cause:    splitmd.CauseForStatus(statusErr.StatusCode),
			Err:      err,
		}
	}
	return &splitmd.CompletionError{
		Provider: "ollama",
		Cause:    splitmd.CauseNetwork,
		Err:      err,
	}
}
