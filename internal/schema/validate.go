package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Mode selects which document shape is expected.
type Mode string

// Supported modes.
const (
	ModeSummary     Mode = "summary"
	ModeActionItems Mode = "action_items"
)

// ParseMode normalizes s (trimmed, lower-cased) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSummary, ModeActionItems:
		return m, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownMode, s)
	}
}

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator checks documents for every Mode. It is safe for concurrent use.
type Validator struct {
	schemas map[Mode]*jsonschema.Schema
	structs *validator.Validate
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	files := map[Mode]string{
		ModeSummary:     "schemas/summary.json",
		ModeActionItems: "schemas/action_items.json",
	}

	compiler := jsonschema.NewCompiler()
	for _, name := range files {
		f, err := schemaFS.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open schema %s: %w", name, err)
		}
		err = compiler.AddResource(name, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	schemas := make(map[Mode]*jsonschema.Schema, len(files))
	for mode, name := range files {
		compiled, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		schemas[mode] = compiled
	}

	return &Validator{schemas: schemas, structs: validator.New()}, nil
}

// Validate checks doc against mode's shape and returns the typed document:
// *Summary for ModeSummary and *ActionItems for ModeActionItems.
func (v *Validator) Validate(mode Mode, doc map[string]any) (any, error) {
	compiled, ok := v.schemas[mode]
	if !ok {
		return nil, fmt.Errorf("%w: got %q", ErrUnknownMode, string(mode))
	}

	if err := compiled.Validate(any(doc)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationFailed, err)
	}

	var typed any
	switch mode {
	case ModeSummary:
		typed = &Summary{}
	default:
		typed = &ActionItems{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationFailed, err)
	}
	if err := json.Unmarshal(raw, typed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationFailed, err)
	}
	if err := v.structs.Struct(typed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationFailed, err)
	}

	return typed, nil
}
