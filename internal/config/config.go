package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	RunLog RunLogConfig `mapstructure:"runlog" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RequestTimeoutSeconds bounds a whole request, generation retries included.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// RequestTimeout returns the request timeout as a duration.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=ollama gemini"`
	Model    string `mapstructure:"model"    validate:"required"`
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`

	// TimeoutSeconds bounds a single attempt.
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"     validate:"gt=0"`
	MaxAttempts       int     `mapstructure:"max_attempts"        validate:"gte=1"`
	RetryDelaySeconds float64 `mapstructure:"retry_delay_seconds" validate:"gte=0"`

	// Temperature is sent with the prompts built by the HTTP endpoints.
	Temperature float64 `mapstructure:"temperature" validate:"gte=0"`

	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
}

// Timeout returns the per-attempt timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the linear backoff unit as a duration.
func (c LLMConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds * float64(time.Second))
}

// Run log drivers.
const (
	RunLogDriverFile     = "file"
	RunLogDriverPostgres = "postgres"
	RunLogDriverNone     = "none"
)

// RunLogConfig selects where run-log records are appended.
type RunLogConfig struct {
	Driver      string `mapstructure:"driver"       validate:"required,oneof=file postgres none"`
	Path        string `mapstructure:"path"         validate:"required_if=Driver file"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
}
