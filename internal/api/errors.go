package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/distill-api/internal/api/shared"
	"github.com/phrazzld/distill-api/internal/extract"
	"github.com/phrazzld/distill-api/internal/generation"
	"github.com/phrazzld/distill-api/internal/schema"
	"github.com/phrazzld/distill-api/internal/service"
)

// Client-facing messages.
const (
	msgUnknownMode     = "mode must be 'summary' or 'action_items'"
	msgInvalidJSON     = "Model returned invalid JSON"
	msgSchemaFailed    = "JSON schema validation failed"
	msgNoActionItems   = "No action items extracted."
	msgGenerationError = "Model generation failed"
	msgTimeout         = "Request timed out"
	msgUnexpected      = "An unexpected error occurred"
)

// isExtractionError reports whether err came from recovering JSON out of the
// model output.
func isExtractionError(err error) bool {
	return errors.Is(err, extract.ErrEmptyInput) ||
		errors.Is(err, extract.ErrNoJSONFound) ||
		errors.Is(err, extract.ErrMalformedJSON)
}

// MapErrorToStatusCode maps service errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, schema.ErrUnknownMode):
		return http.StatusBadRequest

	case isExtractionError(err),
		errors.Is(err, schema.ErrSchemaValidationFailed),
		errors.Is(err, service.ErrNoActionItems):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Internal details
// (raw model output, endpoint URLs, file paths) never appear in it.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	switch {
	case errors.Is(err, schema.ErrUnknownMode):
		return msgUnknownMode
	case isExtractionError(err):
		return msgInvalidJSON
	case errors.Is(err, schema.ErrSchemaValidationFailed):
		return msgSchemaFailed
	case errors.Is(err, service.ErrNoActionItems):
		return msgNoActionItems
	case errors.Is(err, generation.ErrGenerationFailed):
		return msgGenerationError
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error response for err using the mapped status.
// fallbackMsg, when set, replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == msgUnexpected && fallbackMsg != "" {
		message = fallbackMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns a validator error into a short message that
// names the field and the failed rule.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Format: "Key: 'ExtractRequest.Text' Error:Field validation for 'Text' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := strings.ToLower(fieldParts[1])
				if len(fieldParts) >= 5 && fieldParts[3] == "required" {
					return fmt.Sprintf("Invalid %s: required field", field)
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}
