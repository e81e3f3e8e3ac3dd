package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/distill-api/internal/extract"
	"github.com/phrazzld/distill-api/internal/generation"
	"github.com/phrazzld/distill-api/internal/platform/logger"
	"github.com/phrazzld/distill-api/internal/prompt"
	"github.com/phrazzld/distill-api/internal/runlog"
	"github.com/phrazzld/distill-api/internal/schema"
)

// Endpoint names recorded in the run log.
const (
	EndpointExtract     = "/extract"
	EndpointActionItems = "/action-items"
	endpointExtractor   = "/extractor"
)

// ExtractorEndpoint returns the run-log endpoint for the mode-selected route.
func ExtractorEndpoint(mode schema.Mode) string {
	return endpointExtractor + ":" + string(mode)
}

// Result is a validated document. Data is *schema.Summary or
// *schema.ActionItems depending on Mode.
type Result struct {
	Mode schema.Mode
	Data any
}

// Extractor runs the extraction use cases against a single generator.
type Extractor struct {
	generator   generation.Generator
	sink        runlog.Sink
	validator   *schema.Validator
	temperature float64
	logger      *slog.Logger
	now         func() time.Time
}

// NewExtractor wires an Extractor. A nil sink disables run logging.
func NewExtractor(
	generator generation.Generator,
	sink runlog.Sink,
	temperature float64,
	logger *slog.Logger,
) (*Extractor, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if sink == nil {
		sink = runlog.NopSink{}
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema validator: %w", err)
	}

	return &Extractor{
		generator:   generator,
		sink:        sink,
		validator:   validator,
		temperature: temperature,
		logger:      logger.With(slog.String("component", "extractor")),
		now:         time.Now,
	}, nil
}

// Model returns the generator's model identifier.
func (e *Extractor) Model() string {
	return e.generator.Model()
}

// Summarize produces a summary document.
func (e *Extractor) Summarize(ctx context.Context, text string) (*Result, error) {
	return e.run(ctx, EndpointExtract, schema.ModeSummary, prompt.KindSummary, text)
}

// ActionItems produces an action-items document with the strict prompt. An
// empty list is reported as ErrNoActionItems.
func (e *Extractor) ActionItems(ctx context.Context, text string) (*Result, error) {
	res, err := e.run(ctx, EndpointActionItems, schema.ModeActionItems, prompt.KindActionItems, text)
	if err != nil {
		return nil, err
	}

	if items, ok := res.Data.(*schema.ActionItems); !ok || len(items.ActionItems) == 0 {
		return nil, stepError(EndpointActionItems, StepValidate, ErrNoActionItems)
	}
	return res, nil
}

// Run produces the document for mode. An empty action-items list is valid
// here.
func (e *Extractor) Run(ctx context.Context, mode schema.Mode, text string) (*Result, error) {
	switch mode {
	case schema.ModeSummary:
		return e.run(ctx, ExtractorEndpoint(mode), mode, prompt.KindSummary, text)
	case schema.ModeActionItems:
		return e.run(ctx, ExtractorEndpoint(mode), mode, prompt.KindActionItemsBrief, text)
	default:
		return nil, fmt.Errorf("%w: got %q", schema.ErrUnknownMode, string(mode))
	}
}

func (e *Extractor) run(
	ctx context.Context,
	endpoint string,
	mode schema.Mode,
	kind prompt.Kind,
	text string,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, e.logger).With(
		slog.String("endpoint", endpoint),
		slog.String("mode", string(mode)),
	)

	promptText, err := prompt.Render(kind, text)
	if err != nil {
		return nil, stepError(endpoint, StepPrompt, err)
	}

	p := generation.NewPrompt(promptText).WithTemperature(e.temperature)
	start := e.now()
	raw, err := e.generator.Generate(ctx, p)
	if err != nil {
		log.Error("generation failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", e.now().Sub(start)))
		return nil, stepError(endpoint, StepGenerate, err)
	}
	log.Debug("generation completed",
		slog.Int("raw_length", len(raw)),
		slog.Duration("elapsed", e.now().Sub(start)))

	temperature := e.temperature
	rec := runlog.Record{
		TS:          e.now().UTC(),
		Endpoint:    endpoint,
		Model:       e.generator.Model(),
		Temperature: &temperature,
		InputText:   text,
		Prompt:      promptText,
		Raw:         raw,
	}
	if err := e.sink.Append(ctx, rec); err != nil {
		log.Warn("failed to append run log record", slog.String("error", err.Error()))
	}

	doc, err := extract.FirstJSON(raw)
	if err != nil {
		log.Warn("model output did not contain usable JSON", slog.String("error", err.Error()))
		return nil, stepError(endpoint, StepExtract, err)
	}

	data, err := e.validator.Validate(mode, doc)
	if err != nil {
		log.Warn("model output failed schema validation", slog.String("error", err.Error()))
		return nil, stepError(endpoint, StepValidate, err)
	}

	return &Result{Mode: mode, Data: data}, nil
}
