package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/logs"
	"github.com/matthewmueller/splitmd"
	"github.com/matthewmueller/splitmd/internal/ask"
	"github.com/matthewmueller/splitmd/internal/cli"
)

type stub struct {
	reply  string
	err    error
	models []*splitmd.Model
	calls  int
	last   *splitmd.Request
}

var _ splitmd.Provider = (*stub)(nil)

func (s *stub) Name() string {
	return "stub"
}

func (s *stub) Models(ctx context.Context) ([]*splitmd.Model, error) {
	return s.models, nil
}

func (s *stub) Complete(ctx context.Context, req *splitmd.Request) (string, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type console struct {
	cli      *cli.CLI
	provider *stub
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func load(t *testing.T, provider *stub, stdin, answer string) *console {
	t.Helper()
	c := cli.New(logs.Default())
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	c.Stdin = strings.NewReader(stdin)
	c.Stdout = stdout
	c.Stderr = stderr
	c.Asker = ask.Mock(answer)
	c.Providers = []splitmd.Provider{provider}
	return &console{c, provider, stdout, stderr}
}

func TestSplitEndToEnd(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "SECTION 1\n---\nSECTION 2"}
	console := load(t, provider, "# Title\n\nBody text.", "2")

	err := console.cli.Parse(ctx)
	is.NoErr(err)
	is.Equal(console.stdout.String(), "SECTION 1\n---\nSECTION 2\n")
	is.Equal(provider.calls, 1)
	is.Equal(provider.last.Model, "gpt-4o-mini")
	is.True(strings.Contains(provider.last.Prompt, "# Title\n\nBody text."))
	is.True(strings.Contains(provider.last.Prompt, "2"))
}

func TestSplitTrailingNewlinePreserved(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "already terminated\n"}
	console := load(t, provider, "doc", "1")

	err := console.cli.Parse(ctx)
	is.NoErr(err)
	is.Equal(console.stdout.String(), "already terminated\n")
}

func TestSplitCountZero(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "unused"}
	console := load(t, provider, "doc", "unused")

	err := console.cli.Parse(ctx, "--sections", "0")
	var rerr *splitmd.RangeError
	is.True(errors.As(err, &rerr))
	is.Equal(provider.calls, 0)
	is.Equal(console.stdout.String(), "")
}

func TestSplitCountFiftyOne(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "unused"}
	console := load(t, provider, "doc", "unused")

	err := console.cli.Parse(ctx, "--sections", "51")
	var rerr *splitmd.RangeError
	is.True(errors.As(err, &rerr))
	is.Equal(provider.calls, 0)
	is.Equal(console.stdout.String(), "")
}

func TestSplitCountNotAnInteger(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "unused"}
	console := load(t, provider, "doc", "not a number")

	err := console.cli.Parse(ctx)
	var cerr *splitmd.CountError
	is.True(errors.As(err, &cerr))
	is.Equal(provider.calls, 0)
	is.Equal(console.stdout.String(), "")
}

func TestSplitFailingProvider(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{err: &splitmd.CompletionError{Provider: "stub", Cause: splitmd.CauseAuth}}
	console := load(t, provider, "doc", "2")

	err := console.cli.Parse(ctx)
	var cerr *splitmd.CompletionError
	is.True(errors.As(err, &cerr))
	is.Equal(cerr.Cause, splitmd.CauseAuth)
	is.Equal(console.stdout.String(), "")
}

func TestSplitFormatSections(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: `["# Title", "Body text."]`}
	console := load(t, provider, "# Title\n\nBody text.", "2")

	err := console.cli.Parse(ctx, "--format", "sections")
	is.NoErr(err)
	is.Equal(console.stdout.String(), "=== Section 1 ===\n# Title\n\n=== Section 2 ===\nBody text.\n\n")
}

func TestSplitFormatSectionsMalformed(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "not json"}
	console := load(t, provider, "doc", "2")

	err := console.cli.Parse(ctx, "--format", "sections")
	var cerr *splitmd.CompletionError
	is.True(errors.As(err, &cerr))
	is.Equal(cerr.Cause, splitmd.CauseMalformed)
	is.Equal(console.stdout.String(), "")
}

func TestSplitProviderNamed(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "done"}
	console := load(t, provider, "doc", "2")

	err := console.cli.Parse(ctx, "--provider", "stub")
	is.NoErr(err)
	is.Equal(console.stdout.String(), "done\n")
	is.Equal(provider.calls, 1)
}

func TestSplitProviderNotFound(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{reply: "unused"}
	console := load(t, provider, "doc", "2")

	err := console.cli.Parse(ctx, "--provider", "missing")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "provider not found"))
	is.Equal(provider.calls, 0)
}

func TestModels(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	provider := &stub{models: []*splitmd.Model{
		{Provider: "stub", ID: "stub-2"},
		{Provider: "stub", ID: "stub-1"},
	}}
	console := load(t, provider, "", "")

	err := console.cli.Parse(ctx, "models")
	is.NoErr(err)
	is.Equal(console.stdout.String(), "stub/stub-1\nstub/stub-2\n")
}
