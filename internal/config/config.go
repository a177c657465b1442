// Package config loads DeskMate's runtime settings from the environment.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-driven setting the service reads at startup.
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	ModelProvider   string `envconfig:"MODEL_PROVIDER" default:"auto"`
	ModelName       string `envconfig:"MODEL_NAME" default:"phi3:mini"`
	ModelTimeoutSec int    `envconfig:"MODEL_TIMEOUT_SEC" default:"20"`

	EmbedProvider  string `envconfig:"EMBED_PROVIDER" default:"auto"`
	EmbedModelName string `envconfig:"EMBED_MODEL_NAME" default:"nomic-embed-text"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	OllamaHost       string `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	OllamaEmbedModel string `envconfig:"OLLAMA_EMBED_MODEL" default:"nomic-embed-text"`

	TopK          int `envconfig:"TOP_K" default:"6"`
	ChunkTokens   int `envconfig:"CHUNK_TOKENS" default:"512"`
	ChunkOverlap  int `envconfig:"CHUNK_OVERLAP" default:"64"`

	VectorDir string `envconfig:"VECTOR_DIR" default:"./data/vector"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	AllowURLIngest   bool    `envconfig:"ALLOW_URL_INGEST" default:"true"`
	URLMaxDepth      int     `envconfig:"URL_MAX_DEPTH" default:"1"`
	URLMaxPages      int     `envconfig:"URL_MAX_PAGES" default:"5"`
	URLMaxTotalChars int     `envconfig:"URL_MAX_TOTAL_CHARS" default:"20000"`
	URLRateLimitSec  float64 `envconfig:"URL_RATE_LIMIT_SEC" default:"1.0"`

	SentryDSN         string `envconfig:"SENTRY_DSN"`
	SentryEnvironment string `envconfig:"SENTRY_ENVIRONMENT" default:"development"`
}

// Load reads configuration from the environment, first seeding it from a
// local .env file if present, then validates and normalizes it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DESKMATE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	normalize(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads configuration or terminates the process.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func normalize(cfg *Config) {
	cfg.ModelProvider = strings.ToLower(strings.TrimSpace(cfg.ModelProvider))
	cfg.EmbedProvider = strings.ToLower(strings.TrimSpace(cfg.EmbedProvider))
}

func validate(cfg *Config) error {
	if cfg.TopK <= 0 {
		return fmt.Errorf("TOP_K must be a positive integer, got %d", cfg.TopK)
	}
	if cfg.ChunkTokens <= 0 {
		return fmt.Errorf("CHUNK_TOKENS must be a positive integer, got %d", cfg.ChunkTokens)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkTokens {
		return fmt.Errorf("CHUNK_OVERLAP must satisfy 0 <= overlap < CHUNK_TOKENS, got %d/%d", cfg.ChunkOverlap, cfg.ChunkTokens)
	}
	if cfg.URLMaxDepth < 0 {
		return fmt.Errorf("URL_MAX_DEPTH must be non-negative, got %d", cfg.URLMaxDepth)
	}
	if cfg.URLMaxPages <= 0 {
		return fmt.Errorf("URL_MAX_PAGES must be a positive integer, got %d", cfg.URLMaxPages)
	}
	return nil
}

// HasOpenAI reports whether an OpenAI API key is configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
