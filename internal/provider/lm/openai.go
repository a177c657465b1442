package lm

import (
	"context"
	"time"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/retry"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider answers prompts with OpenAI's chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAI constructs an OpenAI-backed chat provider for the given model.
func NewOpenAI(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	var answer string
	result := retry.Do(ctx, retry.Config{MaxAttempts: 3, InitialDelay: 200 * time.Millisecond, Factor: 2, Jitter: true}, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return retry.Permanent(errNoChoices)
		}
		answer = resp.Choices[0].Message.Content
		return nil
	})
	if result.Err != nil {
		return "", domain.NewProviderError("openai chat completion failed", result.Err)
	}
	return answer, nil
}

var errNoChoices = domain.NewProviderError("openai returned no completion choices", nil)
