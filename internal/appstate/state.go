// Package appstate builds the process-wide component graph: vector store,
// graph store, embedding provider, and LM provider, each with a
// construction-with-fallback sequence, grounded on
// original_source/.../main.py's _init_vector_store/_init_graph_repo and
// the teacher's internal/cli/admin/serve.go startup sequence.
package appstate

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/deskmate-ai/deskmate/internal/config"
	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/provider/embed"
	"github.com/deskmate-ai/deskmate/internal/provider/lm"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/deskmate-ai/deskmate/internal/store/vector"
	"github.com/jackc/pgx/v5/pgxpool"
)

// State is the single process-wide instance of each shared component
// (§5 "Global mutable state"). Request handlers take a *State rather than
// reaching for package-level singletons.
type State struct {
	Config   config.Config
	Vector   vector.Store
	Graph    graph.Store
	Embedder embed.Provider
	LM       lm.Provider

	pool             *pgxpool.Pool
	graphBackend     string
	vectorPersistent bool
}

// New constructs application state per cfg, falling back to in-memory
// stores when Postgres is unreachable and to the stub providers when no
// remote/local backend is reachable. Each fallback is a StartupFallback
// event: logged, never surfaced as an error to the caller (§7).
func New(ctx context.Context, cfg config.Config) *State {
	s := &State{Config: cfg}

	pool, err := connectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("appstate: postgres unavailable (%v); using in-memory vector and graph stores", err)
		s.Vector = vector.NewMemoryStore()
		s.Graph = graph.NewMemoryStore()
		s.graphBackend = "memory"
	} else {
		s.pool = pool
		s.Vector = vector.NewPostgresStore(pool)
		s.Graph = graph.NewPostgresStore(pool)
		s.graphBackend = "postgres"
		s.vectorPersistent = true
	}

	s.Embedder = embed.New(ctx, embed.Settings{
		Provider:     cfg.EmbedProvider,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OllamaHost:   cfg.OllamaHost,
		OllamaModel:  cfg.EmbedModelName,
	})

	s.LM = lm.New(ctx, lm.Settings{
		Provider:     cfg.ModelProvider,
		ModelName:    cfg.ModelName,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OllamaHost:   cfg.OllamaHost,
	})

	return s
}

func connectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no DATABASE_URL configured")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Close releases held resources (the Postgres pool, if connected).
func (s *State) Close() {
	if s.Vector != nil {
		s.Vector.Close()
	}
	if s.Graph != nil {
		s.Graph.Close()
	}
}

// Health reports the current reachability and configuration of every
// backing component, per spec.md §6's /health contract supplemented with
// the richer fields of original_source/.../main.py's health handler
// (provider_vendor, local_model_available, operator_message,
// preferred_local_models).
func (s *State) Health(ctx context.Context) domain.HealthReport {
	ollamaReachable := embed.Reachable(ctx, s.Config.OllamaHost)
	hostedReachable := s.Config.HasOpenAI()
	_, statErr := os.Stat(s.Config.VectorDir)
	vectorPathExists := s.Config.VectorDir != "" && statErr == nil

	report := domain.HealthReport{
		Status:               "ok",
		Provider:             s.LM.Name(),
		ModelName:            s.Config.ModelName,
		ProviderVendor:       s.LM.Name(),
		LocalModelAvailable:  ollamaReachable,
		HostedReachable:      hostedReachable,
		OllamaReachable:      ollamaReachable,
		GraphReachable:       s.Graph.Ping(ctx),
		GraphBackend:         s.graphBackend,
		VectorStorePath:      s.Config.VectorDir,
		VectorStorePathExist: vectorPathExists,
		PreferredLocalModels: []string{"phi3:mini", "llama3.2:1b", "qwen2.5:0.5b"},
	}

	if s.LM.Name() == "stub" {
		report.OperatorMessage = "No configured language model backend is reachable; answers use the deterministic stub."
	}
	return report
}
