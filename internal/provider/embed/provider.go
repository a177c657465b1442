// Package embed defines the embedding provider contract (§4.3) and its
// concrete variants: a remote OpenAI embedder, a local Ollama embedder, and
// a deterministic stub used by tests and as the startup fallback.
package embed

import "context"

// Dimensions is the fixed embedding width used across this deployment. All
// providers must return vectors of this length.
const Dimensions = 384

// Provider embeds batches of text into fixed-width vectors. Implementations
// must tolerate an empty input slice by returning an empty slice, and must
// return vectors of the same length and in the same order as the input.
type Provider interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
