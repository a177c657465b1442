package domain

// ComponentHealth reports the live state of one swappable component (the
// embedder, LM provider, vector store, or graph store).
type ComponentHealth struct {
	Reachable       bool
	ActiveImpl      string
	ConfiguredName  string
	ActiveName      string
	OperatorMessage string
}

// HealthReport is the full /health payload (§4.11, supplemented per
// SPEC_FULL.md §4.11 with richer per-backend fields than the distilled
// spec's minimal table).
type HealthReport struct {
	Status               string
	Provider             string
	ModelName            string
	ProviderVendor       string
	LocalModelAvailable  bool
	OperatorMessage      string
	HostedReachable      bool
	OllamaReachable      bool
	GraphReachable       bool
	GraphBackend         string
	VectorStorePath      string
	VectorStorePathExist bool
	PreferredLocalModels []string
}
