package ask

import (
	"context"
	"fmt"

	"github.com/Bowery/prompt"
)

// Asker is an interface for asking the user a question interactively.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Default returns the default asker implementation using bowery/prompt.
func Default() Asker {
	return &defaultAsker{}
}

// defaultAsker implements the Asker interface using bowery/prompt.
type defaultAsker struct{}

// Ask prompts the user with a question and returns their response.
func (a *defaultAsker) Ask(ctx context.Context, question string) (string, error) {
	response, err := prompt.Basic(question+" ", false)
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return response, nil
}
