package importer

import (
	"regexp"
	"strings"
)

// keySeparator joins the parts of a composite natural key. A control
// character keeps user-entered names from colliding with the separator.
const keySeparator = "\x1f"

var whitespaceRun = regexp.MustCompile(`\s+`)

// KeyPart normalizes one identity field for key comparison: lower-cased,
// trimmed, with internal whitespace runs collapsed to single spaces.
// "  Toyota  Motor " and "toyota motor" produce the same part.
func KeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRun.ReplaceAllString(s, " ")
}

// NaturalKey builds the composite natural key for a set of identity fields.
func NaturalKey(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = KeyPart(p)
	}
	return strings.Join(normalized, keySeparator)
}
