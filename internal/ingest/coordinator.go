// Package ingest orchestrates chunking, embedding, and dual-index upsert
// for new documents, grounded on
// original_source/.../services/ingest_service.py's pipeline shape.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deskmate-ai/deskmate/internal/chunk"
	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/entity"
	"github.com/deskmate-ai/deskmate/internal/provider/embed"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/deskmate-ai/deskmate/internal/store/vector"
	"github.com/google/uuid"
)

// Coordinator orchestrates the ingestion pipeline: split, embed, upsert
// vector-first then graph, then link entities.
type Coordinator struct {
	Vector       vector.Store
	Graph        graph.Store
	Embedder     embed.Provider
	ChunkTokens  int
	ChunkOverlap int
}

// New constructs a Coordinator.
func New(v vector.Store, g graph.Store, e embed.Provider, chunkTokens, chunkOverlap int) *Coordinator {
	return &Coordinator{Vector: v, Graph: g, Embedder: e, ChunkTokens: chunkTokens, ChunkOverlap: chunkOverlap}
}

// IngestText runs the full pipeline over plain text: chunk, embed, upsert
// vector records, upsert the graph, then link entities. Unlike the
// reference implementation, an embedding failure aborts here — before any
// store mutation — rather than silently falling back to stub embeddings
// and continuing (§4.6 step 4; recorded in DESIGN.md).
func (c *Coordinator) IngestText(ctx context.Context, title, text string) (domain.IngestResult, error) {
	started := time.Now()

	chunks := chunk.SplitChunks(uuid.NewString(), text, c.ChunkTokens, c.ChunkOverlap)
	if len(chunks) == 0 {
		return domain.IngestResult{MS: elapsedMS(started)}, nil
	}
	docID := chunks[0].DocID

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	embeddings, err := c.Embedder.Embed(ctx, texts)
	if err != nil {
		return domain.IngestResult{}, domain.NewProviderError("embedding failed during ingest", err)
	}
	if len(embeddings) != len(chunks) {
		return domain.IngestResult{}, domain.NewProviderError(
			fmt.Sprintf("embedding provider returned %d vectors for %d chunks", len(embeddings), len(chunks)), nil)
	}

	records := make([]domain.VectorRecord, len(chunks))
	for i, ch := range chunks {
		records[i] = domain.VectorRecord{
			ChunkID:   ch.ChunkID,
			Text:      ch.Text,
			Metadata:  domain.ChunkMetadata{DocID: ch.DocID, Ord: ch.Ord, Title: title},
			Embedding: embeddings[i],
		}
	}

	// Vector-first ordering (§4.6 atomicity): if graph upserts fail after
	// this succeeds, the chunk is still searchable by vector; the
	// inconsistency is accepted rather than rolled back.
	if err := c.Vector.Upsert(ctx, records); err != nil {
		return domain.IngestResult{}, domain.NewStoreError("vector upsert failed during ingest", err)
	}

	if err := c.upsertGraph(ctx, docID, title, chunks); err != nil {
		return domain.IngestResult{}, domain.NewStoreError("graph upsert failed during ingest", err)
	}

	entityKeys := entity.Extract(chunks)
	if err := c.linkEntities(ctx, entityKeys, chunks); err != nil {
		return domain.IngestResult{}, domain.NewStoreError("entity linking failed during ingest", err)
	}

	return domain.IngestResult{
		Chunks:      len(chunks),
		Entities:    len(entityKeys),
		VectorCount: len(records),
		MS:          elapsedMS(started),
	}, nil
}

func (c *Coordinator) upsertGraph(ctx context.Context, docID, title string, chunks []domain.Chunk) error {
	if err := c.Graph.UpsertDocument(ctx, docID, title); err != nil {
		return err
	}
	for _, ch := range chunks {
		if err := c.Graph.UpsertChunk(ctx, ch.ChunkID, ch.DocID, ch.Ord, ch.Text); err != nil {
			return err
		}
		if err := c.Graph.LinkDocChunk(ctx, ch.DocID, ch.ChunkID); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) linkEntities(ctx context.Context, entityKeys []string, chunks []domain.Chunk) error {
	for _, key := range entityKeys {
		if err := c.Graph.UpsertEntity(ctx, key, key); err != nil {
			return err
		}
		for _, ch := range chunks {
			if strings.Contains(strings.ToLower(ch.Text), key) {
				if err := c.Graph.LinkChunkEntity(ctx, ch.ChunkID, key); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func elapsedMS(started time.Time) int64 {
	return int64(time.Since(started) / time.Millisecond)
}
