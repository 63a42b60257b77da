package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/livebud/cli"
	"github.com/livebud/color"
	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/ask"
	"github.com/matthewmueller/splitmd/internal/env"
	"github.com/matthewmueller/splitmd/internal/fetch"
	"github.com/matthewmueller/splitmd/providers/anthropic"
	"github.com/matthewmueller/splitmd/providers/gemini"
	"github.com/matthewmueller/splitmd/providers/ollama"
	"github.com/matthewmueller/splitmd/providers/openai"
)

func New(log *slog.Logger) *CLI {
	return &CLI{
		log:    log,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Asker:  ask.Default(),
	}
}

type CLI struct {
	log    *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Asker  ask.Asker

	// Providers overrides the providers built from the environment. Used in
	// tests to stub out the completion service.
	Providers []splitmd.Provider
}

func (c *CLI) Parse(ctx context.Context, args ...string) error {
	cmd := &Split{}
	cli := cli.New("splitmd", "split a markdown document into sections with a hosted LLM")
	cli.Flag("model", "model to use").Short('m').Env("SPLITMD_MODEL").String(&cmd.Model).Default("gpt-4o-mini")
	cli.Flag("provider", "provider to use").Short('p').Optional().String(&cmd.Provider)
	cli.Flag("sections", "number of sections to split into").Short('n').Optional().String(&cmd.Sections)
	cli.Flag("url", "fetch the document from a URL instead of stdin").Optional().String(&cmd.URL)
	cli.Flag("format", "output format").Enum(&cmd.Format, "raw", "sections").Default("raw")
	cli.Flag("timeout", "bound on the completion call").String(&cmd.Timeout).Default("2m")
	cli.Run(func(ctx context.Context) error {
		return c.Split(ctx, cmd)
	})

	{ // $ splitmd models
		cli := cli.Command("models", "list available models")
		cli.Run(func(ctx context.Context) error {
			return c.Models(ctx, &Models{
				Provider: cmd.Provider,
			})
		})
	}

	return cli.Parse(ctx, args...)
}

type Split struct {
	Model    string
	Provider *string
	Sections *string
	URL      *string
	Format   string
	Timeout  string
}

func (c *CLI) providers() (providers []splitmd.Provider, err error) {
	if len(c.Providers) > 0 {
		return c.Providers, nil
	}
	env, err := env.Load()
	if err != nil {
		return nil, fmt.Errorf("cli: unable to load env: %w", err)
	}
	if env.OpenAIKey != "" {
		providers = append(providers, openai.New(c.log, env.OpenAIKey))
	}
	if env.AnthropicKey != "" {
		providers = append(providers, anthropic.New(c.log, env.AnthropicKey))
	}
	if env.GeminiKey != "" {
		providers = append(providers, gemini.New(c.log, env.GeminiKey))
	}
	if env.OllamaHost != "" {
		host, err := url.Parse(env.OllamaHost)
		if err != nil {
			return nil, fmt.Errorf("cli: unable to parse ollama host: %w", err)
		}
		providers = append(providers, ollama.New(c.log, host))
	}
	return providers, nil
}

func (c *CLI) provider(client *splitmd.Client, providers []splitmd.Provider, name *string) (splitmd.Provider, error) {
	if name == nil {
		if len(providers) == 0 {
			return nil, fmt.Errorf("cli: no providers configured")
		}
		if len(providers) > 1 {
			return nil, fmt.Errorf("cli: multiple providers configured, please specify one with --provider")
		}
		return providers[0], nil
	}
	provider, ok := client.Provider(*name)
	if !ok {
		return nil, fmt.Errorf("cli: provider not found: %s", *name)
	}
	return provider, nil
}

// document captures the markdown to split, either from a URL or by reading
// stdin to EOF.
func (c *CLI) document(ctx context.Context, in *Split) (splitmd.Document, error) {
	if in.URL != nil {
		return fetch.Markdown(ctx, http.DefaultClient, *in.URL)
	}
	fmt.Fprintln(c.Stderr, color.Dim("Paste your markdown document, then press Ctrl-D:"))
	text, err := io.ReadAll(c.Stdin)
	if err != nil {
		return "", fmt.Errorf("cli: reading document: %w", err)
	}
	return splitmd.Document(text), nil
}

// count resolves the requested section count from the flag or by asking.
func (c *CLI) count(ctx context.Context, in *Split) (int, error) {
	if in.Sections != nil {
		return splitmd.ParseCount(*in.Sections)
	}
	answer, err := c.Asker.Ask(ctx, fmt.Sprintf("How many sections (%d-%d)?", splitmd.MinSections, splitmd.MaxSections))
	if err != nil {
		return 0, fmt.Errorf("cli: reading section count: %w", err)
	}
	return splitmd.ParseCount(answer)
}

// Split a document into sections
func (c *CLI) Split(ctx context.Context, in *Split) error {
	timeout, err := time.ParseDuration(in.Timeout)
	if err != nil {
		return fmt.Errorf("cli: invalid timeout: %w", err)
	}

	providers, err := c.providers()
	if err != nil {
		return fmt.Errorf("cli: unable to load providers: %w", err)
	}

	client := splitmd.New(c.log, providers...)

	provider, err := c.provider(client, providers, in.Provider)
	if err != nil {
		return fmt.Errorf("cli: unable to find provider: %w", err)
	}

	doc, err := c.document(ctx, in)
	if err != nil {
		return err
	}

	// Resolve and validate the count before anything is sent
	count, err := c.count(ctx, in)
	if err != nil {
		return err
	}

	// Log the provider and model we're using
	fmt.Fprintln(c.Stderr, color.Dim(provider.Name()+" "+in.Model))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := client.Split(ctx, provider, in.Model, doc, count)
	if err != nil {
		return err
	}

	return c.present(result, in.Format)
}

// present writes the result to stdout. Nothing is written on failure.
func (c *CLI) present(result *splitmd.Result, format string) error {
	switch format {
	case "sections":
		sections, err := result.Sections()
		if err != nil {
			return err
		}
		for i, section := range sections {
			fmt.Fprintf(c.Stdout, "=== Section %d ===\n", i+1)
			fmt.Fprintln(c.Stdout, section)
			fmt.Fprintln(c.Stdout)
		}
		return nil
	default:
		out := result.Raw
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, err := io.WriteString(c.Stdout, out)
		return err
	}
}

type Models struct {
	Provider *string
}

// Models lists available models
func (c *CLI) Models(ctx context.Context, in *Models) error {
	providers, err := c.providers()
	if err != nil {
		return fmt.Errorf("cli: unable to load providers: %w", err)
	}

	client := splitmd.New(c.log, providers...)

	if in.Provider != nil {
		provider, err := c.provider(client, providers, in.Provider)
		if err != nil {
			return fmt.Errorf("cli: unable to find provider: %w", err)
		}
		client = splitmd.New(c.log, provider)
	}

	models, err := client.Models(ctx)
	if err != nil {
		return fmt.Errorf("cli: listing models: %w", err)
	}

	for _, m := range models {
		fmt.Fprintf(c.Stdout, "%s/%s\n", m.Provider, m.ID)
	}

	return nil
}
