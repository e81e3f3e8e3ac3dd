package ollama

// generateRequest is the body posted to /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	// Options is omitted entirely when no temperature is given so that the
	// endpoint keeps its own defaults.
	Options *generateOptions `json:"options,omitempty"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse is the subset of the /api/generate reply the client reads.
type generateResponse struct {
	Response *string `json:"response"`
}
