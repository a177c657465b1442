// Package graph implements the graph store contract (§4.5): documents,
// chunks, and entities connected by CONTAINS and ABOUT edges, queried for
// entity coverage and for the chunks attached to a set of entities.
package graph

import (
	"context"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// Store tracks the document/chunk/entity graph. Degree counts only ABOUT
// edges (chunk-to-entity), not CONTAINS edges (doc-to-chunk) — a document
// with many chunks but no recognized entities still routes to VECTOR mode
// (§4.5, resolved against the broader original reference's degree query;
// see DESIGN.md).
type Store interface {
	UpsertDocument(ctx context.Context, docID, title string) error
	UpsertChunk(ctx context.Context, chunkID, docID string, ord int, text string) error
	LinkDocChunk(ctx context.Context, docID, chunkID string) error
	UpsertEntity(ctx context.Context, key, displayName string) error
	LinkChunkEntity(ctx context.Context, chunkID, entityKey string) error

	// Degrees returns, for each requested entity key, the number of
	// distinct chunks it is linked to via ABOUT edges. Keys with no
	// linked chunks are present with a degree of 0.
	Degrees(ctx context.Context, entityKeys []string) (map[string]int, error)

	// ChunksForEntities returns, deduplicated and capped at limit, the
	// chunks reachable from any of the given entity keys via ABOUT
	// edges. Score is always 0: the graph path has no ranking signal.
	ChunksForEntities(ctx context.Context, entityKeys []string, limit int) ([]domain.RetrievedChunk, error)

	Ping(ctx context.Context) bool
	Close()
}
