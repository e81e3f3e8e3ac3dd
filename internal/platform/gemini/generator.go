package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/distill-api/internal/config"
	"github.com/phrazzld/distill-api/internal/generation"
	"google.golang.org/genai"
)

// ContentGenerator is the subset of the genai Models service used by Generator.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	models  ContentGenerator
	model   string
	retrier *generation.Retrier
	logger  *slog.Logger
}

// Ensure Generator implements generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator with a genai client authenticated by
// cfg.GeminiAPIKey.
func NewGenerator(
	ctx context.Context,
	cfg config.LLMConfig,
	logger *slog.Logger,
	opts ...generation.RetrierOption,
) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return NewGeneratorWithClient(cfg, logger, client.Models, opts...)
}

// NewGeneratorWithClient creates a Generator around an existing ContentGenerator.
func NewGeneratorWithClient(
	cfg config.LLMConfig,
	logger *slog.Logger,
	models ContentGenerator,
	opts ...generation.RetrierOption,
) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models == nil {
		return nil, fmt.Errorf("%w: content generator cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	return &Generator{
		models:  models,
		model:   cfg.Model,
		retrier: generation.NewRetrier(generation.PolicyFromConfig(cfg), logger, opts...),
		logger:  logger,
	}, nil
}

// Model returns the target model identifier.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt to Gemini, retrying failed attempts.
func (g *Generator) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	var genConfig *genai.GenerateContentConfig
	if prompt.Temperature != nil {
		temperature := float32(*prompt.Temperature)
		genConfig = &genai.GenerateContentConfig{Temperature: &temperature}
	}

	return g.retrier.Do(ctx, func(ctx context.Context) (string, error) {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt.Text), genConfig)
		if err != nil {
			return "", fmt.Errorf("gemini request: %w", err)
		}
		return responseText(resp)
	})
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrUnexpectedResponseShape)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrUnexpectedResponseShape)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts in response", generation.ErrUnexpectedResponseShape)
	}
	return sb.String(), nil
}
