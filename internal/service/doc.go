// Package service contains the extraction use cases. It coordinates the
// generation backend, the run log, the JSON extractor, and schema validation
// to turn free text into a validated document.
//
// Each use case follows the same flow:
//
//  1. Render the prompt for the requested mode.
//  2. Generate raw text with the configured temperature.
//  3. Append a run-log record. Failure to record is logged and ignored.
//  4. Recover the first JSON object from the raw text.
//  5. Validate it against the mode's schema.
//
// Failures are returned as *Error values naming the failing step. The
// underlying sentinel errors from the generation, extract, and schema packages
// stay reachable through errors.Is.
package service
