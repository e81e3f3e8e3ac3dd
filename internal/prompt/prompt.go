// Package prompt renders the instructions sent to the model for each
// extraction mode. The rendered text is opaque to the generation and
// extraction layers.
package prompt

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Kind names a prompt template.
type Kind string

// Available prompt kinds.
const (
	// KindSummary asks for {"summary", "key_points"}.
	KindSummary Kind = "summary"
	// KindActionItems asks for {"action_items": [...]} with the strict rule set
	// used by the dedicated action-items endpoint.
	KindActionItems Kind = "action_items"
	// KindActionItemsBrief is the action-items prompt with the shorter rule set.
	KindActionItemsBrief Kind = "action_items_brief"
	// KindTopic asks for a bullet explanation of a topic as JSON.
	KindTopic Kind = "topic"
)

// ErrUnknownKind is returned by Render for an unregistered Kind.
var ErrUnknownKind = errors.New("unknown prompt kind")

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type binding struct {
	file   string
	strict bool
}

var kinds = map[Kind]binding{
	KindSummary:          {file: "summary.tmpl"},
	KindActionItems:      {file: "action_items.tmpl", strict: true},
	KindActionItemsBrief: {file: "action_items.tmpl"},
	KindTopic:            {file: "topic.tmpl"},
}

// data is the template context.
type data struct {
	Text   string
	Strict bool
}

// Render fills the template for kind with text. Leading and trailing
// whitespace of the result is trimmed.
func Render(kind Kind, text string) (string, error) {
	b, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}

	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, b.file, data{Text: text, Strict: b.strict}); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
