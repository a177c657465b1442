package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/deskmate-ai/deskmate/internal/api"
	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/plan"
	"github.com/deskmate-ai/deskmate/internal/provider/lm"
	"github.com/deskmate-ai/deskmate/internal/respond"
	"github.com/deskmate-ai/deskmate/internal/retrieve"
)

// AskHandler serves POST /ask.
type AskHandler struct {
	Planner   *plan.Planner
	Retriever *retrieve.Retriever
	Responder *respond.Responder

	// NewProviderOverride constructs a one-off LM provider for a
	// per-request provider_override (SPEC_FULL.md §3 supplemented
	// field). Returns nil if name is unrecognized.
	NewProviderOverride func(name string) lm.Provider
}

type askRequest struct {
	Question         string `json:"question"`
	TopK             int    `json:"top_k"`
	ProviderOverride string `json:"provider_override"`
}

type askResponse struct {
	Answer     string               `json:"answer"`
	Citations  []domain.Citation    `json:"citations"`
	Planner    domain.PlannerDecision `json:"planner"`
	LatencyMS  int64                `json:"latency_ms"`
	Provider   string               `json:"provider"`
	Confidence float64              `json:"confidence"`
	Question   string               `json:"question"`
}

// Ask handles POST /ask: {question, top_k?, provider_override?} ->
// {answer, citations, planner, latency_ms, provider, confidence, question}.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("malformed JSON body", err))
		return
	}
	if req.Question == "" {
		api.HandleError(w, domain.NewBadInput("question must not be empty"))
		return
	}

	decision, err := h.Planner.Plan(r.Context(), req.Question, req.TopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	result, err := h.Retriever.Retrieve(r.Context(), req.Question, decision)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	decision.Mode = result.ActualMode
	decision.Reasons = result.Reasons

	responder := h.Responder
	if req.ProviderOverride != "" && h.NewProviderOverride != nil {
		if p := h.NewProviderOverride(req.ProviderOverride); p != nil {
			responder = respond.New(p)
		}
	}

	resp, err := responder.Answer(r.Context(), req.Question, decision, result.Chunks)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, askResponse{
		Answer:     resp.Answer,
		Citations:  resp.Citations,
		Planner:    resp.Planner,
		LatencyMS:  resp.LatencyMS,
		Provider:   resp.Provider,
		Confidence: resp.Confidence,
		Question:   resp.Question,
	})
}
