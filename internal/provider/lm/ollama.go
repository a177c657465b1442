package lm

import (
	"context"
	"fmt"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider answers prompts with a locally-running Ollama model,
// grounded on xhad-yes/pkg/llm/chat.go's langchaingo wrapper.
type OllamaProvider struct {
	llm llms.Model
}

// NewOllama constructs an Ollama-backed chat provider.
func NewOllama(model, baseURL string) (*OllamaProvider, error) {
	if model == "" {
		model = "phi3:mini"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama chat model: %w", err)
	}
	return &OllamaProvider{llm: llm}, nil
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := p.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", domain.NewProviderError("ollama generate failed", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", domain.NewProviderError("ollama returned an empty completion", nil)
	}
	return resp.Choices[0].Content, nil
}
