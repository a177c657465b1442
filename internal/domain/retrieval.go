package domain

// VectorRecord is the unit of storage in the vector store: a chunk's text,
// denormalized metadata, and its embedding. D is fixed per deployment.
type VectorRecord struct {
	ChunkID   string
	Text      string
	Metadata  ChunkMetadata
	Embedding []float32
}

// RetrievedChunk is a chunk surfaced by either store, ranked by Score.
// Lower score means closer (distance semantics); consumers must not
// assume normalization across implementations.
type RetrievedChunk struct {
	ID       string
	Text     string
	Metadata ChunkMetadata
	Score    float32
}

// PlannerMode selects which retrieval strategy the retriever executes.
type PlannerMode string

const (
	ModeVector PlannerMode = "VECTOR"
	ModeGraph  PlannerMode = "GRAPH"
	ModeHybrid PlannerMode = "HYBRID"
)

// PlannerDecision is the planner's routing decision for one question.
type PlannerDecision struct {
	Mode     PlannerMode `json:"mode"`
	Reasons  []string    `json:"reasons"`
	TopK     int         `json:"top_k"`
	Entities []string    `json:"entities"`
}
