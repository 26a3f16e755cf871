package slug

import (
	"regexp"
	"strings"
)

var (
	reInvalid    = regexp.MustCompile(`[^\w\s-]`)
	reSeparators = regexp.MustCompile(`[\s_]+`)
)

// Make turns a display string into a URL-safe token: lowercase, trimmed,
// characters outside word/whitespace/hyphen stripped, whitespace and
// underscore runs collapsed into a single hyphen. Hyphens already in the
// input are kept as-is apart from the leading/trailing trim. Empty input
// yields empty output.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reInvalid.ReplaceAllString(s, "")
	s = reSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
