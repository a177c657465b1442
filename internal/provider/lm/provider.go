// Package lm defines the language-model provider contract (§4.9) and its
// concrete variants: a remote OpenAI chat adapter, a local Ollama adapter,
// and a deterministic stub used by tests and as the failure fallback.
package lm

import "context"

// Provider generates a completion for a composed prompt. Implementations
// must return a *domain.DomainError with code domain.ErrCodeProviderError
// (see domain.NewProviderError) on network, timeout, or payload-shape
// failure rather than panicking.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
