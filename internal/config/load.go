package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "DISTILL"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout_seconds", 600)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.model", "llama3.1:8b")
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.timeout_seconds", 120)
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.retry_delay_seconds", 1.0)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.gemini_api_key", "")

	v.SetDefault("runlog.driver", RunLogDriverFile)
	v.SetDefault("runlog.path", "runlog/api_runs.jsonl")
	v.SetDefault("runlog.database_url", "")
}
