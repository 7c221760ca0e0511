package reflection

import (
	"regexp"
	"strings"
)

// Generation backends occasionally emit malformed emphasis runs and cramped
// headings. CleanMarkdown normalizes the output before it reaches clients.

var (
	headingStartRe = regexp.MustCompile(`\n(#{1,6})`)
	headingAfterRe = regexp.MustCompile(`(#{1,6}[^\n]*)\n([^#\n])`)
	horizontalRule = regexp.MustCompile(`\n---\n`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// CleanMarkdown fixes emphasis-marker runs, guarantees blank lines around
// headings and horizontal rules, and collapses runs of blank lines to one.
func CleanMarkdown(text string) string {
	cleaned := strings.TrimSpace(text)

	cleaned = strings.ReplaceAll(cleaned, "**---**", "---")
	cleaned = strings.ReplaceAll(cleaned, "****", "**")
	cleaned = strings.ReplaceAll(cleaned, "***", "**")

	cleaned = headingStartRe.ReplaceAllString(cleaned, "\n\n$1")
	cleaned = headingAfterRe.ReplaceAllString(cleaned, "$1\n\n$2")
	cleaned = horizontalRule.ReplaceAllString(cleaned, "\n\n---\n\n")
	cleaned = excessNewlines.ReplaceAllString(cleaned, "\n\n")

	return strings.TrimSpace(cleaned)
}
