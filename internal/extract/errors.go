package extract

import (
	"errors"
	"fmt"
)

// Error definitions for the extract package.
var (
	// ErrEmptyInput is returned when the text is empty or whitespace only.
	ErrEmptyInput = errors.New("empty response; no JSON to parse")

	// ErrNoJSONFound is returned when no brace-delimited span exists in the text.
	ErrNoJSONFound = errors.New("no JSON object braces found in response")

	// ErrMalformedJSON is returned when a candidate span fails to parse even
	// after trailing-comma repair.
	ErrMalformedJSON = errors.New("failed to parse JSON")
)

// maxPrefixRunes bounds the candidate prefix carried by MalformedJSONError.
const maxPrefixRunes = 80

// MalformedJSONError describes a candidate that could not be parsed.
// Prefix holds at most the first 80 characters of the candidate, never the
// full text.
type MalformedJSONError struct {
	Prefix string
	Err    error
}

func newMalformedJSONError(candidate string, err error) *MalformedJSONError {
	return &MalformedJSONError{Prefix: prefix(candidate, maxPrefixRunes), Err: err}
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("%s: candidate starts with %q: %v", ErrMalformedJSON.Error(), e.Prefix, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedJSON.
func (e *MalformedJSONError) Is(target error) bool {
	return target == ErrMalformedJSON
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
