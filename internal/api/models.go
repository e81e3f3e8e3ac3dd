package api

// ExtractRequest is the payload for the summary and action-items endpoints.
type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractorRequest is the payload for the mode-selected endpoint.
type ExtractorRequest struct {
	Text string `json:"text" validate:"required"`
	// Mode is "summary" or "action_items", case-insensitive.
	Mode string `json:"mode" validate:"required"`
}

// HealthResponse reports liveness and the configured model.
type HealthResponse struct {
	OK    bool   `json:"ok"`
	Model string `json:"model"`
}

// DataResponse wraps a validated document.
type DataResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}
