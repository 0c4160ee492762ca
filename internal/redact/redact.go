// Package redact scrubs sensitive material from strings before they reach
// logs or error responses: connection strings, credentials, JWTs, email
// addresses, and filesystem paths.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Ordered: connection strings and tokens must be scrubbed before the email
// and path rules get a chance to leave partial matches behind, and the JWT
// rule runs before the generic key rule so a JWT preceded by a word like
// "token" is still labeled as a token.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`), CredentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), CredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), TokenPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|token|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), KeyPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\s[\s\w,*()]*(FROM|INTO|SET|TABLE)\b[^;]*`), SQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's message.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
