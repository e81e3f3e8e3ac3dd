package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// openFenceRegex matches a code fence with an optional language tag and
	// the whitespace that follows it.
	openFenceRegex = regexp.MustCompile("(?i)```[a-z0-9_+-]*\\s*")

	// trailingCommaRegex matches a comma followed only by whitespace before a
	// closing brace or bracket.
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
)

const fence = "```"

// FirstJSON extracts and parses the first JSON object found in text.
//
// It returns ErrEmptyInput for blank text, ErrNoJSONFound when no brace span
// exists, and a *MalformedJSONError (matching ErrMalformedJSON) when the span
// cannot be parsed even after trailing commas are removed.
//
// The span runs from the first '{' to the last '}', so text holding more than
// one object, or a stray brace after the object, fails as malformed.
func FirstJSON(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	candidate, err := BraceSpan(StripFences(text))
	if err != nil {
		return nil, err
	}

	doc, err := parseObject(candidate)
	if err == nil {
		return doc, nil
	}

	doc, err = parseObject(RemoveTrailingCommas(candidate))
	if err != nil {
		return nil, newMalformedJSONError(candidate, err)
	}
	return doc, nil
}

// StripFences removes every markdown code fence from text, opening fences
// with their language tag included, and trims the result.
func StripFences(text string) string {
	cleaned := openFenceRegex.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, fence, "")
	return strings.TrimSpace(cleaned)
}

// BraceSpan returns the inclusive substring between the first '{' and the
// last '}' in text. Nesting is not tracked.
func BraceSpan(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSONFound
	}
	return strings.TrimSpace(text[start : end+1]), nil
}

// RemoveTrailingCommas drops any comma that precedes a closing '}' or ']'
// with only whitespace in between.
func RemoveTrailingCommas(text string) string {
	return trailingCommaRegex.ReplaceAllString(text, "$1")
}

func parseObject(candidate string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
