package vector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// MemoryStore is the in-memory fallback vector store: a linear scan over a
// map, using cosine distance. It satisfies the full contract of Store —
// only persistence and scalability differ from a real backend (§4.4). Its
// search performs genuine ascending-distance ranking, unlike the original
// reference implementation's in-memory fallback, which merely truncated
// the map in insertion order (see DESIGN.md).
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.VectorRecord
	order   []string
}

// NewMemoryStore constructs an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.VectorRecord)}
}

func (s *MemoryStore) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if _, exists := s.records[r.ChunkID]; !exists {
			s.order = append(s.order, r.ChunkID)
		}
		s.records[r.ChunkID] = r
	}
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, queryVec []float32, k int) ([]domain.RetrievedChunk, error) {
	if k < 1 {
		k = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(queryVec) == 0 {
		return s.firstK(k), nil
	}

	type scored struct {
		chunkID string
		score   float32
	}
	scores := make([]scored, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		scores = append(scores, scored{chunkID: id, score: cosineDistance(queryVec, rec.Embedding)})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score < scores[j].score })

	if k > len(scores) {
		k = len(scores)
	}
	out := make([]domain.RetrievedChunk, 0, k)
	for _, s2 := range scores[:k] {
		rec := s.records[s2.chunkID]
		out = append(out, domain.RetrievedChunk{
			ID: rec.ChunkID, Text: rec.Text, Metadata: rec.Metadata, Score: s2.score,
		})
	}
	return out, nil
}

func (s *MemoryStore) firstK(k int) []domain.RetrievedChunk {
	if k > len(s.order) {
		k = len(s.order)
	}
	out := make([]domain.RetrievedChunk, 0, k)
	for _, id := range s.order[:k] {
		rec := s.records[id]
		out = append(out, domain.RetrievedChunk{ID: rec.ChunkID, Text: rec.Text, Metadata: rec.Metadata, Score: 0})
	}
	return out
}

func (s *MemoryStore) Ping(ctx context.Context) bool { return true }

func (s *MemoryStore) Close() {}

// cosineDistance returns 1 - cosine_similarity(a, b), so smaller is closer,
// matching the monotone-distance contract of RetrievedChunk.Score.
func cosineDistance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 1
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return float32(1 - similarity)
}
