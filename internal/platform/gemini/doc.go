// Package gemini provides an implementation of the generation.Generator
// interface backed by Google's Gemini API.
//
// It is an alternative to the local Ollama backend for deployments without a
// local model. Each attempt is a single GenerateContent call made through the
// google.golang.org/genai client; the text parts of the first candidate are
// concatenated into the raw result. Attempts are retried under the same
// linear backoff policy as every other generation backend.
package gemini
