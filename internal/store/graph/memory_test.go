package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGraph(t *testing.T, s *MemoryStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.UpsertDocument(ctx, "d1", "Doc One"))
	require.NoError(t, s.UpsertChunk(ctx, "d1-0", "d1", 0, "chunk zero text"))
	require.NoError(t, s.UpsertChunk(ctx, "d1-1", "d1", 1, "chunk one text"))
	require.NoError(t, s.LinkDocChunk(ctx, "d1", "d1-0"))
	require.NoError(t, s.LinkDocChunk(ctx, "d1", "d1-1"))
	require.NoError(t, s.UpsertEntity(ctx, "acme", "Acme"))
	require.NoError(t, s.LinkChunkEntity(ctx, "d1-0", "acme"))
	require.NoError(t, s.LinkChunkEntity(ctx, "d1-1", "acme"))
}

func TestMemoryStore_DegreesCountsDistinctChunks(t *testing.T) {
	s := NewMemoryStore()
	seedGraph(t, s)

	deg, err := s.Degrees(context.Background(), []string{"acme", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 2, deg["acme"])
	assert.Equal(t, 0, deg["ghost"])
}

func TestMemoryStore_ChunksForEntitiesDeduplicates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seedGraph(t, s)
	require.NoError(t, s.UpsertEntity(ctx, "widget", "Widget"))
	require.NoError(t, s.LinkChunkEntity(ctx, "d1-0", "widget"))

	out, err := s.ChunksForEntities(ctx, []string{"acme", "widget"}, 10)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestMemoryStore_ChunksForEntitiesRespectsLimit(t *testing.T) {
	s := NewMemoryStore()
	seedGraph(t, s)

	out, err := s.ChunksForEntities(context.Background(), []string{"acme"}, 1)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestMemoryStore_LinkChunkEntityIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seedGraph(t, s)
	require.NoError(t, s.LinkChunkEntity(ctx, "d1-0", "acme"))

	deg, err := s.Degrees(ctx, []string{"acme"})
	require.NoError(t, err)
	assert.Equal(t, 2, deg["acme"])
}

func TestMemoryStore_PingAlwaysHealthy(t *testing.T) {
	s := NewMemoryStore()
	assert.True(t, s.Ping(context.Background()))
}
