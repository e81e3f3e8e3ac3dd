// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file, and environment variables. It
// provides type-safe access to settings needed by the server, the generation
// backends, and the run log while keeping configuration details separate from
// business logic.
package config
