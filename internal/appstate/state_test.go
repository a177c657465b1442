package appstate

import (
	"context"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/config"
	"github.com/deskmate-ai/deskmate/internal/provider/embed"
	"github.com/deskmate-ai/deskmate/internal/provider/lm"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/deskmate-ai/deskmate/internal/store/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryState(cfg config.Config) *State {
	return &State{
		Config:       cfg,
		Vector:       vector.NewMemoryStore(),
		Graph:        graph.NewMemoryStore(),
		Embedder:     embed.NewStub(),
		LM:           lm.NewStub(),
		graphBackend: "memory",
	}
}

func TestHealth_StubProviderSetsOperatorMessage(t *testing.T) {
	s := newMemoryState(config.Config{ModelName: "phi3:mini", VectorDir: "./data/vector"})
	report := s.Health(context.Background())

	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "stub", report.Provider)
	assert.NotEmpty(t, report.OperatorMessage)
	assert.Equal(t, "memory", report.GraphBackend)
	assert.True(t, report.GraphReachable)
}

func TestHealth_NonStubProviderOmitsOperatorMessage(t *testing.T) {
	s := newMemoryState(config.Config{ModelName: "gpt-4o-mini"})
	s.LM = lm.NewOpenAI("test-key", "gpt-4o-mini")

	report := s.Health(context.Background())

	assert.Equal(t, "openai", report.Provider)
	assert.Empty(t, report.OperatorMessage)
}

func TestHealth_ReportsPreferredLocalModels(t *testing.T) {
	s := newMemoryState(config.Config{})
	report := s.Health(context.Background())
	assert.Contains(t, report.PreferredLocalModels, "phi3:mini")
}

func TestClose_ClosesVectorAndGraphStores(t *testing.T) {
	s := newMemoryState(config.Config{})
	require.NotPanics(t, func() { s.Close() })
}

func TestConnectPostgres_EmptyDSNFails(t *testing.T) {
	_, err := connectPostgres(context.Background(), "")
	require.Error(t, err)
}
