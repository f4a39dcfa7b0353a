package ports

import "context"

// TextGenerator is the outbound interface to a generative language model.
// Implementations report network, timeout or malformed-response failures
// as AdapterError; callers treat those as recoverable.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
