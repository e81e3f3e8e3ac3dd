package generation

import (
	"context"
)

// Prompt is the input of a single generation call. Temperature is optional:
// a nil Temperature leaves the endpoint default in place.
type Prompt struct {
	Text        string
	Temperature *float64
}

// NewPrompt creates a Prompt without a temperature.
func NewPrompt(text string) Prompt {
	return Prompt{Text: text}
}

// WithTemperature returns a copy of p carrying the given temperature.
func (p Prompt) WithTemperature(temperature float64) Prompt {
	p.Temperature = &temperature
	return p
}

// Generator defines the interface for producing raw text from a prompt.
// This interface serves as a boundary between the application core and
// external language model services.
type Generator interface {
	// Generate returns the raw text produced for prompt. Transient failures are
	// retried internally; the returned error wraps ErrGenerationFailed once the
	// retry policy is exhausted.
	Generate(ctx context.Context, prompt Prompt) (string, error)

	// Model returns the identifier of the target model.
	Model() string
}
