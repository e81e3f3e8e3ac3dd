package schema

import "errors"

// Error definitions for the schema package.
var (
	// ErrSchemaValidationFailed is returned when a document does not match the
	// expected shape.
	ErrSchemaValidationFailed = errors.New("JSON schema validation failed")

	// ErrUnknownMode is returned for a mode other than summary or action_items.
	ErrUnknownMode = errors.New("mode must be 'summary' or 'action_items'")
)
