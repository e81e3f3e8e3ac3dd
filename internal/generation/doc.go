// Package generation defines the boundary between the application and the
// language model endpoints that produce raw text for a prompt.
//
// A Generator turns a Prompt into raw model output. Implementations live in
// the platform packages (ollama, gemini) and share the bounded retry policy
// defined here: a fixed number of attempts with linear backoff between them.
// Raw output is never treated as structured data here; callers hand it to the
// extract package.
package generation
