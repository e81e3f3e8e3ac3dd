package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrContentBlocked is returned when the first candidate was stopped by
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)
