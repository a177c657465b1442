package lm

import (
	"context"
	"log"

	"github.com/deskmate-ai/deskmate/internal/provider/embed"
)

// Settings configures LM provider construction.
type Settings struct {
	Provider     string // auto | openai | ollama | stub
	ModelName    string
	OpenAIAPIKey string
	OllamaHost   string
}

// New constructs an LM provider per settings. "auto" probes Ollama
// reachability, then falls back to OpenAI if a key is configured, then the
// stub, matching the embedding provider's auto-selection order so a
// deployment with only one reachable backend behaves the same way for
// both components (§4.9, §4.11).
func New(ctx context.Context, s Settings) Provider {
	switch s.Provider {
	case "openai":
		if s.OpenAIAPIKey == "" {
			log.Printf("lm: openai provider requested but no API key configured, falling back to stub")
			return NewStub()
		}
		return NewOpenAI(s.OpenAIAPIKey, s.ModelName)
	case "ollama":
		p, err := NewOllama(s.ModelName, s.OllamaHost)
		if err != nil {
			log.Printf("lm: ollama provider construction failed, falling back to stub: %v", err)
			return NewStub()
		}
		return p
	case "stub":
		return NewStub()
	default: // "auto"
		return autoSelect(ctx, s)
	}
}

func autoSelect(ctx context.Context, s Settings) Provider {
	host := s.OllamaHost
	if host == "" {
		host = "http://localhost:11434"
	}
	if embed.Reachable(ctx, host) {
		if p, err := NewOllama(s.ModelName, host); err == nil {
			return p
		}
	}
	if s.OpenAIAPIKey != "" {
		return NewOpenAI(s.OpenAIAPIKey, s.ModelName)
	}
	log.Printf("lm: auto selection found no reachable provider, falling back to stub")
	return NewStub()
}
