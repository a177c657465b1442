package graph

import (
	"context"
	"fmt"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the document/chunk/entity graph in the same
// Postgres database as the vector store, grounded on the teacher's
// internal/repository/knowledge.go query style. One database backing both
// stores is a Go-idiomatic simplification over the split Chroma+Neo4j
// original (§4.5; see DESIGN.md).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) UpsertDocument(ctx context.Context, docID, title string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO graph_documents (doc_id, title) VALUES ($1, $2)
		 ON CONFLICT (doc_id) DO UPDATE SET title = EXCLUDED.title`,
		docID, title)
	if err != nil {
		return fmt.Errorf("graph store: upsert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertChunk(ctx context.Context, chunkID, docID string, ord int, text string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO graph_chunks (chunk_id, doc_id, ord, content) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (chunk_id) DO UPDATE SET doc_id = EXCLUDED.doc_id, ord = EXCLUDED.ord, content = EXCLUDED.content`,
		chunkID, docID, ord, text)
	if err != nil {
		return fmt.Errorf("graph store: upsert chunk: %w", err)
	}
	return nil
}

func (s *PostgresStore) LinkDocChunk(ctx context.Context, docID, chunkID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO graph_contains_edges (doc_id, chunk_id) VALUES ($1, $2)
		 ON CONFLICT (doc_id, chunk_id) DO NOTHING`,
		docID, chunkID)
	if err != nil {
		return fmt.Errorf("graph store: link doc-chunk: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertEntity(ctx context.Context, key, displayName string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO graph_entities (entity_key, display_name) VALUES ($1, $2)
		 ON CONFLICT (entity_key) DO NOTHING`,
		key, displayName)
	if err != nil {
		return fmt.Errorf("graph store: upsert entity: %w", err)
	}
	return nil
}

func (s *PostgresStore) LinkChunkEntity(ctx context.Context, chunkID, entityKey string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO graph_about_edges (chunk_id, entity_key) VALUES ($1, $2)
		 ON CONFLICT (chunk_id, entity_key) DO NOTHING`,
		chunkID, entityKey)
	if err != nil {
		return fmt.Errorf("graph store: link chunk-entity: %w", err)
	}
	return nil
}

func (s *PostgresStore) Degrees(ctx context.Context, entityKeys []string) (map[string]int, error) {
	out := make(map[string]int, len(entityKeys))
	for _, key := range entityKeys {
		out[key] = 0
	}
	if len(entityKeys) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT entity_key, COUNT(DISTINCT chunk_id)
		 FROM graph_about_edges WHERE entity_key = ANY($1)
		 GROUP BY entity_key`,
		entityKeys)
	if err != nil {
		return nil, fmt.Errorf("graph store: degrees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("graph store: scan degree row: %w", err)
		}
		out[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("graph store: degree row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ChunksForEntities(ctx context.Context, entityKeys []string, limit int) ([]domain.RetrievedChunk, error) {
	if len(entityKeys) == 0 {
		return nil, nil
	}
	if limit < 1 {
		limit = 1
	}

	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT c.chunk_id, c.content, c.doc_id, c.ord, d.title
		 FROM graph_about_edges e
		 JOIN graph_chunks c ON c.chunk_id = e.chunk_id
		 JOIN graph_documents d ON d.doc_id = c.doc_id
		 WHERE e.entity_key = ANY($1)
		 ORDER BY c.doc_id ASC, c.ord ASC
		 LIMIT $2`,
		entityKeys, limit)
	if err != nil {
		return nil, fmt.Errorf("graph store: chunks for entities: %w", err)
	}
	defer rows.Close()

	var out []domain.RetrievedChunk
	for rows.Next() {
		var rc domain.RetrievedChunk
		if err := rows.Scan(&rc.ID, &rc.Text, &rc.Metadata.DocID, &rc.Metadata.Ord, &rc.Metadata.Title); err != nil {
			return nil, fmt.Errorf("graph store: scan chunk row: %w", err)
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("graph store: chunk row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Ping(ctx context.Context) bool {
	return s.pool.Ping(ctx) == nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
