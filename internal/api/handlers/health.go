package handlers

import (
	"net/http"

	"github.com/deskmate-ai/deskmate/internal/api"
	"github.com/deskmate-ai/deskmate/internal/domain"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	Health func(r *http.Request) domain.HealthReport
}

type healthResponse struct {
	Status               string   `json:"status"`
	Provider             string   `json:"provider"`
	ModelName            string   `json:"model_name"`
	ProviderVendor       string   `json:"provider_vendor"`
	LocalModelAvailable  bool     `json:"local_model_available"`
	OperatorMessage      string   `json:"operator_message,omitempty"`
	HostedReachable      bool     `json:"hosted_reachable"`
	OllamaReachable      bool     `json:"ollama_reachable"`
	GraphReachable       bool     `json:"graph_reachable"`
	GraphBackend         string   `json:"graph_backend"`
	VectorStorePath      string   `json:"vector_store_path"`
	VectorStorePathExist bool     `json:"vector_store_path_exists"`
	PreferredLocalModels []string `json:"preferred_local_models,omitempty"`
}

// Get handles GET /health.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	report := h.Health(r)
	api.Success(w, http.StatusOK, healthResponse{
		Status:               report.Status,
		Provider:             report.Provider,
		ModelName:            report.ModelName,
		ProviderVendor:       report.ProviderVendor,
		LocalModelAvailable:  report.LocalModelAvailable,
		OperatorMessage:      report.OperatorMessage,
		HostedReachable:      report.HostedReachable,
		OllamaReachable:      report.OllamaReachable,
		GraphReachable:       report.GraphReachable,
		GraphBackend:         report.GraphBackend,
		VectorStorePath:      report.VectorStorePath,
		VectorStorePathExist: report.VectorStorePathExist,
		PreferredLocalModels: report.PreferredLocalModels,
	})
}
