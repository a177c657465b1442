package retrieve

import (
	"context"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/provider/embed"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/deskmate-ai/deskmate/internal/store/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieve_VectorMode(t *testing.T) {
	v := vector.NewMemoryStore()
	g := graph.NewMemoryStore()
	e := embed.NewStub()
	ctx := context.Background()

	require.NoError(t, v.Upsert(ctx, []domain.VectorRecord{
		{ChunkID: "c1", Text: "hello world", Embedding: mustEmbed(t, e, "hello world")},
	}))

	r := New(v, g, e)
	decision := domain.PlannerDecision{Mode: domain.ModeVector, TopK: 3, Reasons: []string{"no graph entities"}}
	res, err := r.Retrieve(ctx, "hello world", decision)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeVector, res.ActualMode)
	assert.Len(t, res.Chunks, 1)
}

func TestRetrieve_GraphModeFallsBackToVectorWhenEmpty(t *testing.T) {
	v := vector.NewMemoryStore()
	g := graph.NewMemoryStore()
	e := embed.NewStub()
	ctx := context.Background()

	require.NoError(t, v.Upsert(ctx, []domain.VectorRecord{
		{ChunkID: "c1", Text: "fallback content", Embedding: mustEmbed(t, e, "fallback content")},
	}))

	r := New(v, g, e)
	decision := domain.PlannerDecision{Mode: domain.ModeGraph, TopK: 3, Entities: []string{"acme"}}
	res, err := r.Retrieve(ctx, "tell me about acme", decision)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeVector, res.ActualMode)
	assert.Contains(t, res.Reasons, "graph empty, fell back to vector")
}

func TestRetrieve_GraphModeReturnsGraphChunks(t *testing.T) {
	v := vector.NewMemoryStore()
	g := graph.NewMemoryStore()
	e := embed.NewStub()
	ctx := context.Background()

	require.NoError(t, g.UpsertEntity(ctx, "acme", "Acme"))
	require.NoError(t, g.UpsertChunk(ctx, "c1", "d1", 0, "acme details"))
	require.NoError(t, g.LinkChunkEntity(ctx, "c1", "acme"))

	r := New(v, g, e)
	decision := domain.PlannerDecision{Mode: domain.ModeGraph, TopK: 3, Entities: []string{"acme"}}
	res, err := r.Retrieve(ctx, "tell me about acme", decision)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeGraph, res.ActualMode)
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "c1", res.Chunks[0].ID)
}

func TestRetrieve_HybridFallsBackToVectorWhenGraphEmpty(t *testing.T) {
	v := vector.NewMemoryStore()
	g := graph.NewMemoryStore()
	e := embed.NewStub()
	ctx := context.Background()

	require.NoError(t, v.Upsert(ctx, []domain.VectorRecord{
		{ChunkID: "c1", Text: "vector only content", Embedding: mustEmbed(t, e, "vector only content")},
	}))

	r := New(v, g, e)
	decision := domain.PlannerDecision{Mode: domain.ModeHybrid, TopK: 3, Entities: []string{"acme"}}
	res, err := r.Retrieve(ctx, "tell me about acme", decision)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeVector, res.ActualMode)
}

func TestRetrieve_HybridIntersectsGraphAndVector(t *testing.T) {
	v := vector.NewMemoryStore()
	g := graph.NewMemoryStore()
	e := embed.NewStub()
	ctx := context.Background()

	require.NoError(t, v.Upsert(ctx, []domain.VectorRecord{
		{ChunkID: "c1", Text: "acme details here", Embedding: mustEmbed(t, e, "acme details here")},
		{ChunkID: "c2", Text: "unrelated content", Embedding: mustEmbed(t, e, "unrelated content")},
	}))
	require.NoError(t, g.UpsertEntity(ctx, "acme", "Acme"))
	require.NoError(t, g.UpsertChunk(ctx, "c1", "d1", 0, "acme details here"))
	require.NoError(t, g.LinkChunkEntity(ctx, "c1", "acme"))

	r := New(v, g, e)
	decision := domain.PlannerDecision{Mode: domain.ModeHybrid, TopK: 5, Entities: []string{"acme"}}
	res, err := r.Retrieve(ctx, "acme details here", decision)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeHybrid, res.ActualMode)
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "c1", res.Chunks[0].ID)
}

func TestRetrieve_HybridVectorWinsWhenIntersectionEmpty(t *testing.T) {
	v := vector.NewMemoryStore()
	g := graph.NewMemoryStore()
	e := embed.NewStub()
	ctx := context.Background()

	require.NoError(t, v.Upsert(ctx, []domain.VectorRecord{
		{ChunkID: "c1", Text: "unrelated vector content", Embedding: mustEmbed(t, e, "unrelated vector content")},
	}))
	require.NoError(t, g.UpsertEntity(ctx, "acme", "Acme"))
	require.NoError(t, g.UpsertChunk(ctx, "c2", "d1", 0, "acme only in graph"))
	require.NoError(t, g.LinkChunkEntity(ctx, "c2", "acme"))

	r := New(v, g, e)
	decision := domain.PlannerDecision{Mode: domain.ModeHybrid, TopK: 5, Entities: []string{"acme"}}
	res, err := r.Retrieve(ctx, "unrelated vector content", decision)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeHybrid, res.ActualMode)
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "c1", res.Chunks[0].ID)
	assert.Contains(t, res.Reasons, "hybrid intersection empty, vector wins")
}

func mustEmbed(t *testing.T, e embed.Provider, text string) []float32 {
	t.Helper()
	vecs, err := e.Embed(context.Background(), []string{text})
	require.NoError(t, err)
	return vecs[0]
}
