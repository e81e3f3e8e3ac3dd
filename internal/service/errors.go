package service

import (
	"errors"
	"fmt"
)

// ErrNoActionItems is returned by the action-items use case when the model
// produced a valid document with an empty list.
var ErrNoActionItems = errors.New("no action items extracted")

// Steps reported in Error.Step.
const (
	StepPrompt   = "prompt"
	StepGenerate = "generate"
	StepExtract  = "extract"
	StepValidate = "validate"
)

// Error records which step of an extraction failed.
type Error struct {
	Endpoint string
	Step     string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Endpoint, e.Step, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func stepError(endpoint, step string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Endpoint: endpoint, Step: step, Err: err}
}
