package validation

import (
	"html"
	"strings"
)

// Maximum content lengths, measured before escaping.
const (
	MaxPostContentLength    = 5000
	MaxCommentContentLength = 1000
)

// SanitizeContent trims whitespace and HTML-escapes user-supplied text. The
// stored form is plain text; a renderer that prints it verbatim cannot be
// tricked into interpreting it as markup.
func SanitizeContent(content string) string {
	return html.EscapeString(strings.TrimSpace(content))
}

// IsBlank reports whether the string contains no visible characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
