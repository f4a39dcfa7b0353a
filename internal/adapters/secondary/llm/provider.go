package llm

import (
	"fmt"
	"log/slog"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// ForProvider returns the generator for a provider name. The "offline"
// provider (and an empty name) selects no generator at all, which the
// pipeline treats as a request for the built-in template.
func ForProvider(provider, apiKey string, logger *slog.Logger) (ports.TextGenerator, error) {
	switch provider {
	case "", "offline":
		return nil, nil
	case "gemini":
		return NewGeminiClient(apiKey, logger), nil
	case "openai":
		return NewOpenAIClient(apiKey, logger), nil
	default:
		return nil, &entities.ValidationError{
			Field:  "provider",
			Reason: fmt.Sprintf("unknown provider %q", provider),
		}
	}
}

func (g *GeminiClient) fail(err error) error {
	g.logger.Warn("gemini request failed", slog.String("error", err.Error()))
	return &entities.AdapterError{Provider: "gemini", Err: err}
}

func (o *OpenAIClient) fail(err error) error {
	o.logger.Warn("openai request failed", slog.String("error", err.Error()))
	return &entities.AdapterError{Provider: "openai", Err: err}
}
