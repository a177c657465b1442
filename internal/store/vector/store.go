// Package vector implements the vector store contract (§4.4): idempotent
// upsert by chunk_id and k-NN search over embeddings.
package vector

import (
	"context"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// Store upserts and searches vector records. Implementations must be safe
// for concurrent use; the coordinator never holds cross-call locks (§5).
type Store interface {
	Upsert(ctx context.Context, records []domain.VectorRecord) error
	Search(ctx context.Context, queryVec []float32, k int) ([]domain.RetrievedChunk, error)
	Ping(ctx context.Context) bool
	Close()
}
