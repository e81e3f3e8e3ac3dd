// Package ollama provides an implementation of the generation.Generator
// interface for a locally hosted model served over the Ollama HTTP API.
//
// Each call posts a single non-streaming request to /api/generate and
// validates that the decoded body carries a string "response" field. Any
// transport error, non-2xx status, or unexpected response shape counts as a
// failed attempt under the shared generation retry policy.
package ollama
