package embed

import (
	"context"
	"log"
)

// Settings configures embedding provider construction.
type Settings struct {
	Provider       string // auto | openai | ollama | stub
	OpenAIAPIKey   string
	OllamaHost     string
	OllamaModel    string
}

// New constructs an embedding provider per settings. "auto" probes Ollama
// reachability, then falls back to OpenAI if a key is configured, then the
// stub — grounded on the original's get_embedding_provider factory order
// (§4.3, SPEC_FULL.md §4.3).
func New(ctx context.Context, s Settings) Provider {
	switch s.Provider {
	case "openai":
		if s.OpenAIAPIKey == "" {
			log.Printf("embed: openai provider requested but no API key configured, falling back to stub")
			return NewStub()
		}
		return NewOpenAI(s.OpenAIAPIKey)
	case "ollama":
		p, err := NewOllama(s.OllamaModel, s.OllamaHost)
		if err != nil {
			log.Printf("embed: ollama provider construction failed, falling back to stub: %v", err)
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
	if Reachable(ctx, host) {
		if p, err := NewOllama(s.OllamaModel, host); err == nil {
			return p
		}
	}
	if s.OpenAIAPIKey != "" {
		return NewOpenAI(s.OpenAIAPIKey)
	}
	log.Printf("embed: auto selection found no reachable provider, falling back to stub")
	return NewStub()
}
