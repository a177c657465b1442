// Package retrieve executes a PlannerDecision against the vector and
// graph stores, applying the fallback lattice of §4.8.
package retrieve

import (
	"context"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/provider/embed"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/deskmate-ai/deskmate/internal/store/vector"
)

// Retriever executes retrieval for a planned question.
type Retriever struct {
	Vector   vector.Store
	Graph    graph.Store
	Embedder embed.Provider
}

// New constructs a Retriever.
func New(v vector.Store, g graph.Store, e embed.Provider) *Retriever {
	return &Retriever{Vector: v, Graph: g, Embedder: e}
}

// Result is a retrieval outcome: the chunks surfaced and the mode that
// actually produced them (which may differ from decision.Mode when a
// fallback fired).
type Result struct {
	Chunks     []domain.RetrievedChunk
	ActualMode domain.PlannerMode
	Reasons    []string
}

// Retrieve executes decision against the stores. It uses decision.Entities
// directly — it does not re-run entity extraction, unlike the reference
// implementation's graph_search, which independently re-extracts entities
// from the question text (§4.8; recorded in DESIGN.md).
func (r *Retriever) Retrieve(ctx context.Context, question string, decision domain.PlannerDecision) (Result, error) {
	switch decision.Mode {
	case domain.ModeGraph:
		return r.retrieveGraph(ctx, question, decision)
	case domain.ModeHybrid:
		return r.retrieveHybrid(ctx, question, decision)
	default:
		return r.retrieveVector(ctx, question, decision)
	}
}

func (r *Retriever) retrieveVector(ctx context.Context, question string, decision domain.PlannerDecision) (Result, error) {
	chunks, err := r.vectorSearch(ctx, question, decision.TopK)
	if err != nil {
		return Result{}, err
	}
	return Result{Chunks: chunks, ActualMode: domain.ModeVector, Reasons: decision.Reasons}, nil
}

func (r *Retriever) retrieveGraph(ctx context.Context, question string, decision domain.PlannerDecision) (Result, error) {
	// A graph store error is treated the same as an empty graph (§7): the
	// retriever falls back to vector mode rather than surfacing the error.
	chunks, _ := r.Graph.ChunksForEntities(ctx, decision.Entities, decision.TopK)
	if len(chunks) == 0 {
		v, err := r.retrieveVector(ctx, question, decision)
		if err != nil {
			return Result{}, err
		}
		v.Reasons = append(append([]string{}, decision.Reasons...), "graph empty, fell back to vector")
		return v, nil
	}
	return Result{Chunks: chunks, ActualMode: domain.ModeGraph, Reasons: decision.Reasons}, nil
}

func (r *Retriever) retrieveHybrid(ctx context.Context, question string, decision domain.PlannerDecision) (Result, error) {
	// A graph store error is treated the same as an empty graph (§7): the
	// retriever falls back to vector mode rather than surfacing the error.
	g, _ := r.Graph.ChunksForEntities(ctx, decision.Entities, decision.TopK)
	if len(g) == 0 {
		v, err := r.retrieveVector(ctx, question, decision)
		if err != nil {
			return Result{}, err
		}
		v.Reasons = append(append([]string{}, decision.Reasons...), "graph empty, fell back to vector")
		return v, nil
	}

	v, err := r.vectorSearch(ctx, question, decision.TopK)
	if err != nil {
		return Result{}, err
	}

	inGraph := make(map[string]bool, len(g))
	for _, c := range g {
		inGraph[c.ID] = true
	}

	var filtered []domain.RetrievedChunk
	for _, c := range v {
		if inGraph[c.ID] {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		// Graph provided no usable intersection; vectors win unfiltered.
		return Result{Chunks: v, ActualMode: domain.ModeHybrid, Reasons: append(append([]string{}, decision.Reasons...), "hybrid intersection empty, vector wins")}, nil
	}
	return Result{Chunks: filtered, ActualMode: domain.ModeHybrid, Reasons: decision.Reasons}, nil
}

func (r *Retriever) vectorSearch(ctx context.Context, question string, topK int) ([]domain.RetrievedChunk, error) {
	vecs, err := r.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, domain.NewProviderError("embedding question failed", err)
	}
	var qvec []float32
	if len(vecs) > 0 {
		qvec = vecs[0]
	}
	chunks, err := r.Vector.Search(ctx, qvec, topK)
	if err != nil {
		return nil, domain.NewStoreError("vector retrieval failed", err)
	}
	return chunks, nil
}
