// Package plan implements the retrieval planner (§4.7): it routes a
// question to VECTOR, GRAPH, or HYBRID mode using entity presence and
// graph degree.
package plan

import (
	"context"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/entity"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
)

// GraphThreshold is the minimum maximum-degree at which the planner
// selects pure GRAPH mode. A design decision derived from the empirical
// sparsity of small service-desk graphs (§4.7).
const GraphThreshold = 3

// Planner decides a retrieval strategy for a question.
type Planner struct {
	Graph graph.Store
	TopK  int
}

// New constructs a Planner with a default top_k.
func New(g graph.Store, topK int) *Planner {
	return &Planner{Graph: g, TopK: topK}
}

// Plan extracts entities from the question, looks up their graph degree,
// and routes per §4.7:
//  1. qents empty or max(deg) == 0 -> VECTOR, "no graph entities"
//  2. max(deg) >= GraphThreshold   -> GRAPH, "graph coverage ≥ 3"
//  3. otherwise                    -> HYBRID, "graph is sparse"
//
// top_k is overridden per call when override > 0 (AskRequest.top_k,
// SPEC_FULL.md §3 supplemented field), otherwise defaults to p.TopK.
func (p *Planner) Plan(ctx context.Context, question string, topKOverride int) (domain.PlannerDecision, error) {
	topK := p.TopK
	if topKOverride > 0 {
		topK = topKOverride
	}

	qents := entity.ExtractText(question)

	if len(qents) == 0 {
		return domain.PlannerDecision{Mode: domain.ModeVector, Reasons: []string{"no graph entities"}, TopK: topK}, nil
	}

	degrees, err := p.Graph.Degrees(ctx, qents)
	if err != nil {
		return domain.PlannerDecision{}, domain.NewStoreError("planner degree lookup failed", err)
	}

	maxDeg := 0
	var positive []string
	for _, key := range qents {
		if d := degrees[key]; d > 0 {
			positive = append(positive, key)
			if d > maxDeg {
				maxDeg = d
			}
		}
	}

	if maxDeg == 0 {
		return domain.PlannerDecision{Mode: domain.ModeVector, Reasons: []string{"no graph entities"}, TopK: topK}, nil
	}
	if maxDeg >= GraphThreshold {
		return domain.PlannerDecision{Mode: domain.ModeGraph, Reasons: []string{"graph coverage ≥ 3"}, TopK: topK, Entities: positive}, nil
	}
	return domain.PlannerDecision{Mode: domain.ModeHybrid, Reasons: []string{"graph is sparse"}, TopK: topK, Entities: positive}, nil
}
