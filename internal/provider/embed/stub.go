package embed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

// StubProvider returns deterministic, hash-seeded pseudo-random unit
// vectors. It never fails and requires no network access, making it the
// provider of last resort (§4.3 variant c).
type StubProvider struct{}

// NewStub constructs the deterministic stub embedding provider.
func NewStub() *StubProvider { return &StubProvider{} }

func (s *StubProvider) Name() string { return "stub" }

func (s *StubProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = stubVector(text)
	}
	return out, nil
}

func stubVector(text string) []float32 {
	sum := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	rnd := rand.New(rand.NewSource(seed))

	vec := make([]float32, Dimensions)
	var sumSquares float64
	for i := range vec {
		v := rnd.Float64()*2 - 1 // uniform(-1, 1)
		vec[i] = float32(v)
		sumSquares += v * v
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		norm = 1
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
