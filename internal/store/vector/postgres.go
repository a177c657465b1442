package vector

import (
	"context"
	"fmt"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PostgresStore persists vector records in Postgres using the pgvector
// extension, grounded on the teacher's
// internal/repository/knowledge_chunk.go upsert pattern, generalized from
// per-knowledge-item replace to per-chunk upsert-by-chunk_id (§4.4 requires
// idempotent upsert, not wholesale replace).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pool. Callers own the pool's
// lifecycle up to Close.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := make([][]interface{}, 0, len(records))
	for _, r := range records {
		batch = append(batch, []interface{}{
			r.ChunkID, r.Metadata.DocID, r.Metadata.Ord, r.Metadata.Title, r.Text, pgvector.NewVector(r.Embedding),
		})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("vector store: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range batch {
		_, err := tx.Exec(ctx,
			`INSERT INTO vector_chunks (chunk_id, doc_id, ord, title, content, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (chunk_id) DO UPDATE SET
				doc_id = EXCLUDED.doc_id,
				ord = EXCLUDED.ord,
				title = EXCLUDED.title,
				content = EXCLUDED.content,
				embedding = EXCLUDED.embedding`,
			row[0], row[1], row[2], row[3], row[4], row[5],
		)
		if err != nil {
			return fmt.Errorf("vector store: upsert chunk %v: %w", row[0], err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("vector store: commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, queryVec []float32, k int) ([]domain.RetrievedChunk, error) {
	if k < 1 {
		k = 1
	}

	var rows interface {
		Next() bool
		Scan(dest ...interface{}) error
		Err() error
		Close()
	}

	if len(queryVec) == 0 {
		r, err := s.pool.Query(ctx,
			`SELECT chunk_id, content, doc_id, ord, title, 0 AS distance
			 FROM vector_chunks ORDER BY chunk_id ASC LIMIT $1`, k)
		if err != nil {
			return nil, fmt.Errorf("vector store: search (empty query): %w", err)
		}
		rows = r
	} else {
		r, err := s.pool.Query(ctx,
			`SELECT chunk_id, content, doc_id, ord, title, embedding <=> $1 AS distance
			 FROM vector_chunks ORDER BY embedding <=> $1 ASC LIMIT $2`,
			pgvector.NewVector(queryVec), k)
		if err != nil {
			return nil, fmt.Errorf("vector store: search: %w", err)
		}
		rows = r
	}
	defer rows.Close()

	var out []domain.RetrievedChunk
	for rows.Next() {
		var rc domain.RetrievedChunk
		var score float64
		if err := rows.Scan(&rc.ID, &rc.Text, &rc.Metadata.DocID, &rc.Metadata.Ord, &rc.Metadata.Title, &score); err != nil {
			return nil, fmt.Errorf("vector store: scan row: %w", err)
		}
		rc.Score = float32(score)
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vector store: row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Ping(ctx context.Context) bool {
	return s.pool.Ping(ctx) == nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
