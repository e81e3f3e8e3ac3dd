package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/distill-api/internal/config"
	"github.com/phrazzld/distill-api/internal/generation"
)

const (
	generatePath = "/api/generate"

	// maxErrorBody bounds how much of a failed response body is kept.
	maxErrorBody = 512
)

// HTTPDoer is the transport used by Client. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements generation.Generator against an Ollama endpoint.
type Client struct {
	baseURL string
	model   string
	http    HTTPDoer
	retrier *generation.Retrier
	logger  *slog.Logger
}

// Ensure Client implements generation.Generator interface
var _ generation.Generator = (*Client)(nil)

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	doer        HTTPDoer
	retrierOpts []generation.RetrierOption
}

// WithHTTPDoer replaces the HTTP transport.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(o *clientOptions) {
		o.doer = doer
	}
}

// WithRetrierOptions passes options to the underlying generation.Retrier.
func WithRetrierOptions(opts ...generation.RetrierOption) Option {
	return func(o *clientOptions) {
		o.retrierOpts = append(o.retrierOpts, opts...)
	}
}

// NewClient creates a Client for cfg.Model at cfg.BaseURL. The per-attempt
// timeout and retry policy come from cfg.
func NewClient(cfg config.LLMConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}

	options := clientOptions{doer: &http.Client{}}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    options.doer,
		retrier: generation.NewRetrier(generation.PolicyFromConfig(cfg), logger, options.retrierOpts...),
		logger:  logger,
	}, nil
}

// Model returns the target model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate posts prompt to the endpoint, retrying failed attempts under the
// configured policy.
func (c *Client) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	body, err := json.Marshal(newGenerateRequest(c.model, prompt))
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	c.logger.DebugContext(ctx, "generating text",
		"model", c.model,
		"prompt_length", len(prompt.Text),
		"temperature_set", prompt.Temperature != nil)

	return c.retrier.Do(ctx, func(ctx context.Context) (string, error) {
		return c.attempt(ctx, body)
	})
}

func newGenerateRequest(model string, prompt generation.Prompt) generateRequest {
	req := generateRequest{
		Model:  model,
		Prompt: prompt.Text,
		Stream: false,
	}
	if prompt.Temperature != nil {
		req.Options = &generateOptions{Temperature: *prompt.Temperature}
	}
	return req
}

func (c *Client) attempt(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &generation.StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	return decodeResponse(resp.Body)
}

// decodeResponse reads the generated text, rejecting any body whose
// "response" field is missing or not a string.
func decodeResponse(r io.Reader) (string, error) {
	var decoded generateResponse
	if err := json.NewDecoder(r).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrUnexpectedResponseShape, err)
	}
	if decoded.Response == nil {
		return "", fmt.Errorf("%w: missing response field", generation.ErrUnexpectedResponseShape)
	}
	return *decoded.Response, nil
}
