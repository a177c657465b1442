package embed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider embeds text with a locally-running Ollama embedding model,
// grounded on xhad-yes/pkg/llm/embedder.go's langchaingo wrapper.
type OllamaProvider struct {
	llm     *ollama.LLM
	baseURL string
}

// NewOllama constructs an Ollama-backed embedding provider for the given
// model and server URL.
func NewOllama(model, baseURL string) (*OllamaProvider, error) {
	if model == "" {
		model = "nomic-embed-text"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama embedder: %w", err)
	}
	return &OllamaProvider{llm: llm, baseURL: baseURL}, nil
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vecs, err := p.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, domain.NewProviderError("ollama embeddings request failed", err)
	}
	return vecs, nil
}

// Reachable probes the Ollama server's /api/tags endpoint with a short,
// bounded timeout, for the auto-selection and health-probe paths (§4.11).
func Reachable(ctx context.Context, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	client := &http.Client{Timeout: 500 * time.Millisecond}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
