package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/config"
)

// ErrEmptyResponse is returned when the provider answers without a candidate.
var ErrEmptyResponse = errors.New("empty response")

// Generator sends a single prompt to a text model and returns its reply,
// trimmed of surrounding whitespace. Replies are not deterministic.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a Generator holding remote resources.
type Client interface {
	Generator
	Close() error
}

// Error wraps a failed call with the provider that produced it.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := NewGemini(ctx, cfg.APIKey(), cfg.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey(), cfg.Model, ""), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
