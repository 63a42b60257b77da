package gemini

import (
	"errors"
	"io"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/splitmd"
	"google.golang.org/genai"
)

func TestClassifyAuth(t *testing.T) {
	is := is.New(t)
	err := classify(genai.APIError{Code: 401})
	var cerr *splitmd.CompletionError
	is.True(errors.As(err, &cerr))
	is.Equal(cerr.Cause, splitmd.CauseAuth)
	is.Equal(cerr.Provider, "gemini")
}

func TestClassifyRateLimit(t *testing.T) {
	is := is.New(t)
	err := classify(genai.APIError{Code: 429})
	var cerr *splitmd.CompletionError
	is.True(errors.As(err, &cerr))
	is.Equal(cerr.Cause, splitmd.CauseRateLimit)
}

func TestClassifyTransport(t *testing.T) {
	is := is.New(t)
	err := classify(io.ErrUnexpectedEOF)
	var cerr *splitmd.CompletionError
	is.True(errors.As(err, &cerr))
	is.Equal(cerr.Cause, splitmd.CauseNetwork)
	is.True(errors.Is(err, io.ErrUnexpectedEOF))
}
