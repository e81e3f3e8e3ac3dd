package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when every attempt to generate text failed.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUnexpectedResponseShape is returned when the endpoint answered but the
	// payload does not carry a string-typed generated text field.
	ErrUnexpectedResponseShape = errors.New("unexpected response format from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// FailedError is returned once the retry policy is exhausted. It carries the
// number of attempts made and the error from the last one.
type FailedError struct {
	Attempts int
	Err      error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrGenerationFailed.Error(), e.Attempts, e.Err)
}

// Unwrap returns the last underlying error.
func (e *FailedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrGenerationFailed.
func (e *FailedError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// StatusError reports a non-2xx HTTP response from a generation endpoint.
type StatusError struct {
	StatusCode int
	// Body is a bounded prefix of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("generation endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation endpoint returned status %d: %s", e.StatusCode, e.Body)
}
