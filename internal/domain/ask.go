package domain

// Citation is one attributed source backing an answer.
type Citation struct {
	DocID   string  `json:"doc_id"`
	ChunkID string  `json:"chunk_id"`
	Score   float32 `json:"score"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
}

// IngestResult summarizes the effect of one ingest call.
type IngestResult struct {
	Chunks       int
	Entities     int
	VectorCount  int
	MS           int64
	Pages        int // set by ingest_pdf / ingest_url; 0 for ingest_text
}

// AskResponse is the full answer to one question.
type AskResponse struct {
	Answer     string
	Citations  []Citation
	Planner    PlannerDecision
	LatencyMS  int64
	Provider   string
	Confidence float64
	Question   string
}

// DefaultStubAnswer is the fixed response of the deterministic stub LM
// provider, used by tests and as the failure-path fallback answer.
const DefaultStubAnswer = "hi, this was a test you pass"

// ProviderUnavailablePrefix prefixes DefaultStubAnswer when the configured
// provider fails mid-request (§4.10).
const ProviderUnavailablePrefix = "Model provider unavailable; falling back to stub. "
