package plan

import (
	"context"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_NoEntitiesInQuestionRoutesVector(t *testing.T) {
	p := New(graph.NewMemoryStore(), 6)
	decision, err := p.Plan(context.Background(), "how do i fix it", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeVector, decision.Mode)
	assert.Equal(t, []string{"no graph entities"}, decision.Reasons)
}

func TestPlan_EntitiesWithZeroDegreeRoutesVector(t *testing.T) {
	p := New(graph.NewMemoryStore(), 6)
	decision, err := p.Plan(context.Background(), "Tell me about Acme Corp", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeVector, decision.Mode)
	assert.Equal(t, []string{"no graph entities"}, decision.Reasons)
}

func TestPlan_HighDegreeRoutesGraph(t *testing.T) {
	g := graph.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, g.UpsertEntity(ctx, "acme", "Acme"))
	for i := 0; i < GraphThreshold; i++ {
		chunkID := domain.NewChunkID("d1", i)
		require.NoError(t, g.UpsertChunk(ctx, chunkID, "d1", i, "acme text"))
		require.NoError(t, g.LinkChunkEntity(ctx, chunkID, "acme"))
	}

	p := New(g, 6)
	decision, err := p.Plan(ctx, "Tell me about Acme", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeGraph, decision.Mode)
	assert.Equal(t, []string{"graph coverage ≥ 3"}, decision.Reasons)
	assert.Contains(t, decision.Entities, "acme")
}

func TestPlan_LowDegreeRoutesHybrid(t *testing.T) {
	g := graph.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, g.UpsertEntity(ctx, "acme", "Acme"))
	chunkID := domain.NewChunkID("d1", 0)
	require.NoError(t, g.UpsertChunk(ctx, chunkID, "d1", 0, "acme text"))
	require.NoError(t, g.LinkChunkEntity(ctx, chunkID, "acme"))

	p := New(g, 6)
	decision, err := p.Plan(ctx, "Tell me about Acme", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeHybrid, decision.Mode)
	assert.Equal(t, []string{"graph is sparse"}, decision.Reasons)
}

func TestPlan_TopKOverrideWins(t *testing.T) {
	p := New(graph.NewMemoryStore(), 6)
	decision, err := p.Plan(context.Background(), "no entities here", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, decision.TopK)
}

func TestPlan_DefaultTopKWhenNoOverride(t *testing.T) {
	p := New(graph.NewMemoryStore(), 6)
	decision, err := p.Plan(context.Background(), "no entities here", 0)
	require.NoError(t, err)
	assert.Equal(t, 6, decision.TopK)
}
