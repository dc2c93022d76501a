// Package redact scrubs sensitive material from strings before they are
// logged: database connection strings, bearer tokens, AWS credentials, and
// API keys. Error text returned to clients never passes through here; this
// is purely a logging guard.
package redact

import "regexp"

var patterns = []struct {
	re          *regexp.Regexp
	placeholder string
}{
	// Connection strings with embedded credentials.
	{regexp.MustCompile(`(?i)(postgres(?:ql)?|mysql|mongodb)://[^@\s]+@`), "[REDACTED_DSN]"},
	// Three-part base64url JWTs.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), "[REDACTED_JWT]"},
	// AWS access key ids.
	{regexp.MustCompile(`AKIA[A-Z0-9]{16}`), "[REDACTED_AWS_KEY]"},
	// Key/secret assignments.
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), "${1}${2}[REDACTED]"},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
