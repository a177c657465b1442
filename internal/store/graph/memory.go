package graph

import (
	"context"
	"sort"
	"sync"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

type memChunk struct {
	docID string
	ord   int
	text  string
	title string
}

// MemoryStore is an adjacency-map graph store, grounded on
// original_source/.../store/graph_repo.py's InMemoryGraphRepository.
// All mutations take a single coarse lock: concurrent ingests touching
// the same entity converge by merge rather than by fine-grained locking
// (§5's "coarse-grained per-store locking" guidance for the fallback).
type MemoryStore struct {
	mu sync.Mutex

	docTitles map[string]string          // doc_id -> title
	chunks    map[string]memChunk        // chunk_id -> chunk
	docChunks map[string][]string        // doc_id -> chunk_ids (CONTAINS)
	entities  map[string]string          // entity_key -> display_name
	aboutFwd  map[string]map[string]bool // chunk_id -> set(entity_key)
	aboutRev  map[string]map[string]bool // entity_key -> set(chunk_id)
}

// NewMemoryStore constructs an empty in-memory graph store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docTitles: make(map[string]string),
		chunks:    make(map[string]memChunk),
		docChunks: make(map[string][]string),
		entities:  make(map[string]string),
		aboutFwd:  make(map[string]map[string]bool),
		aboutRev:  make(map[string]map[string]bool),
	}
}

func (s *MemoryStore) UpsertDocument(ctx context.Context, docID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docTitles[docID] = title
	return nil
}

func (s *MemoryStore) UpsertChunk(ctx context.Context, chunkID, docID string, ord int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[chunkID] = memChunk{docID: docID, ord: ord, text: text, title: s.docTitles[docID]}
	return nil
}

func (s *MemoryStore) LinkDocChunk(ctx context.Context, docID, chunkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.docChunks[docID] {
		if id == chunkID {
			return nil
		}
	}
	s.docChunks[docID] = append(s.docChunks[docID], chunkID)
	return nil
}

func (s *MemoryStore) UpsertEntity(ctx context.Context, key, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[key]; !exists {
		s.entities[key] = displayName
	}
	return nil
}

func (s *MemoryStore) LinkChunkEntity(ctx context.Context, chunkID, entityKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.aboutFwd[chunkID] == nil {
		s.aboutFwd[chunkID] = make(map[string]bool)
	}
	s.aboutFwd[chunkID][entityKey] = true

	if s.aboutRev[entityKey] == nil {
		s.aboutRev[entityKey] = make(map[string]bool)
	}
	s.aboutRev[entityKey][chunkID] = true
	return nil
}

func (s *MemoryStore) Degrees(ctx context.Context, entityKeys []string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(entityKeys))
	for _, key := range entityKeys {
		out[key] = len(s.aboutRev[key])
	}
	return out, nil
}

func (s *MemoryStore) ChunksForEntities(ctx context.Context, entityKeys []string, limit int) ([]domain.RetrievedChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var out []domain.RetrievedChunk
	for _, key := range entityKeys {
		for chunkID := range s.aboutRev[key] {
			if seen[chunkID] {
				continue
			}
			seen[chunkID] = true
			c, ok := s.chunks[chunkID]
			if !ok {
				continue
			}
			out = append(out, domain.RetrievedChunk{
				ID:   chunkID,
				Text: c.text,
				Metadata: domain.ChunkMetadata{
					DocID: c.docID,
					Ord:   c.ord,
					Title: c.title,
				},
				Score: 0,
			})
		}
	}

	// Map iteration order above is randomized per run; sort by (doc_id, ord)
	// before truncating to limit so results are deterministic (§4.5, §8).
	sort.Slice(out, func(i, j int) bool {
		if out[i].Metadata.DocID != out[j].Metadata.DocID {
			return out[i].Metadata.DocID < out[j].Metadata.DocID
		}
		return out[i].Metadata.Ord < out[j].Metadata.Ord
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Ping(ctx context.Context) bool { return true }

func (s *MemoryStore) Close() {}
