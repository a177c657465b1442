package embed

import (
	"context"
	"fmt"

	"github.com/deskmate-ai/deskmate/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider embeds text using OpenAI's embeddings API, grounded on the
// adapter shape the teacher uses for its own OpenAI client.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAI constructs an OpenAI-backed embedding provider.
func NewOpenAI(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.AdaEmbeddingV2,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, domain.NewProviderError("openai embeddings request failed", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, domain.NewProviderError(
			fmt.Sprintf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts)), nil)
	}

	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = d.Embedding
	}
	return out, nil
}
