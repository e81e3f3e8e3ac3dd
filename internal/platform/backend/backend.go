// Package backend selects the generation backend named by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/distill-api/internal/config"
	"github.com/phrazzld/distill-api/internal/generation"
	"github.com/phrazzld/distill-api/internal/platform/gemini"
	"github.com/phrazzld/distill-api/internal/platform/ollama"
)

// Providers accepted in config.LLMConfig.Provider.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// New returns the Generator for cfg.Provider. An empty provider selects
// Ollama.
func New(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	genLogger := logger.With(slog.String("component", "llm_generator"), slog.String("provider", cfg.Provider))

	switch cfg.Provider {
	case ProviderGemini:
		g, err := gemini.NewGenerator(ctx, cfg, genLogger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOllama, "":
		c, err := ollama.NewClient(cfg, genLogger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
