package anthropic_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/matthewmueller/logs"
	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/env"
	"github.com/matthewmueller/splitmd/providers/anthropic"
)

const testModel = `claude-3-5-haiku-latest`

func loadEnv(t *testing.T) *env.Env {
	t.Helper()
	e, err := env.Load()
	if err != nil {
		t.Fatalf("anthropic: loading env: %v", err)
	}
	if e.AnthropicKey == "" {
		t.Skip("ANTHROPIC_API_KEY not set")
	}
	return e
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestComplete(t *testing.T) {
	e := loadEnv(t)
	is := is.New(t)
	ctx := testContext(t)

	provider := anthropic.New(logs.Default(), e.AnthropicKey)
	reply, err := provider.Complete(ctx, &splitmd.Request{
		Model:  testModel,
		Prompt: "What is 2+2? Reply with just the number.",
	})
	is.NoErr(err)
	is.True(strings.Contains(reply, "4"))
}

func TestModels(t *testing.T) {
	e := loadEnv(t)
	is := is.New(t)
	ctx := testContext(t)

	provider := anthropic.New(logs.Default(), e.AnthropicKey)
	models, err := provider.Models(ctx)
	is.NoErr(err)
	is.True(len(models) > 0)
}
