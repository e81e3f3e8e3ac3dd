// Package redact removes credentials and local paths from strings before
// they are logged. Error messages in this service can carry database URLs,
// generation endpoint URLs with API keys in the query string, and run-log
// file paths.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Rules apply in order; earlier rules see the unmodified input.
var rules = []rule{
	// user:password@ in connection strings
	{
		re:   regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|mongodb|redis)://[^@\s/]+@`),
		repl: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	// Google API keys
	{
		re:   regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		repl: RedactedKeyPlaceholder,
	},
	// ?key=... in request URLs
	{
		re:   regexp.MustCompile(`(?i)([?&](?:key|api_key|access_token|token)=)[^&\s"']+`),
		repl: "${1}" + RedactedKeyPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/=]{8,}`),
		repl: "${1}" + RedactedKeyPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(api[_-]?key|secret|password|passwd|pwd)(\s*[:=]\s*['"]?)[^\s'"&,]{3,}`),
		repl: "${1}${2}" + RedactedCredentialPlaceholder,
	},
	// Absolute filesystem paths. URL paths are left alone because they follow
	// a host, not whitespace or a quote.
	{
		re:   regexp.MustCompile(`(^|[\s"'(])(/[\w.\-]+){2,}`),
		repl: "${1}" + RedactedPathPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		repl: RedactedStackPlaceholder,
	},
}

// String redacts sensitive fragments from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// Error redacts sensitive fragments from err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
