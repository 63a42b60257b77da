package splitmd

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Document is the full markdown text for one run. It is captured once and
// never mutated.
type Document string

// Request is a single completion request
type Request struct {
	Model  string
	System string
	Prompt string
}

// Model represents an available model
type Model struct {
	Provider string
	ID       string
}

// Provider is a hosted completion service
type Provider interface {
	Name() string
	Models(ctx context.Context) ([]*Model, error)
	Complete(ctx context.Context, req *Request) (string, error)
}

// Result holds the model's reply for one split run
type Result struct {
	// Raw is the exact text returned by the model
	Raw string
}

// Sections decodes the reply into its sections. The model is instructed to
// return a JSON array of strings; anything else fails with a completion
// error.
func (r *Result) Sections() ([]string, error) {
	return parseSections(r.Raw)
}

// Client manages providers
type Client struct {
	log       *slog.Logger
	providers []Provider
}

// New creates a new Client
func New(log *slog.Logger, providers ...Provider) *Client {
	return &Client{log, providers}
}

// Provider returns the configured provider with the given name
func (c *Client) Provider(name string) (Provider, bool) {
	for _, p := range c.providers {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Split asks the provider's model to split doc into count sections. The
// count is validated before anything is sent.
func (c *Client) Split(ctx context.Context, provider Provider, model string, doc Document, count int) (*Result, error) {
	prompt, err := Prompt(doc, count)
	if err != nil {
		return nil, err
	}
	c.log.Debug("splitmd: requesting split",
		slog.String("provider", provider.Name()),
		slog.String("model", model),
		slog.Int("sections", count),
	)
	raw, err := provider.Complete(ctx, &Request{
		Model:  model,
		System: system,
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Raw: raw}, nil
}

// Models returns all available models from all providers
func (c *Client) Models(ctx context.Context) (models []*Model, err error) {
	eg, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for _, provider := range c.providers {
		eg.Go(func() error {
			m, err := provider.Models(ctx)
			if err != nil {
				return err
			}
			// TODO: dedupe
			mu.Lock()
			models = append(models, m...)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(models, func(i, j int) bool {
		if models[i].Provider == models[j].Provider {
			return models[i].ID < models[j].ID
		}
		return models[i].Provider < models[j].Provider
	})
	return models, nil
}
