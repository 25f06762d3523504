package sanitize

import "regexp"

// Free-form text has no field names to match, so the line scrubber falls back
// to value patterns. It exists for unstructured input only (e.g. non-JSON
// lines in a piped log stream); the structured sanitizer never calls it and
// never inspects values.
var (
	// key=value and key: value pairs for sensitive keys.
	textKeyValuePattern = regexp.MustCompile(`(?i)((?:password|passwd|secret|token|api_?key|authorization|email|phone|parcel_?id|owner_?name|ssn)["']?\s*[:=]\s*)("[^"]*"|'[^']*'|[^\s,;}&]+)`)

	textValuePatterns = []*regexp.Regexp{
		// Bare email addresses.
		regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		// SSNs in the common dashed form.
		regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		// 13-16 digit card numbers, with or without separators.
		regexp.MustCompile(`\b\d(?:[ -]?\d){12,15}\b`),
	}
)

// ScrubText redacts sensitive fragments from a line of free-form text.
func ScrubText(line string) string {
	if line == "" {
		return line
	}
	out := textKeyValuePattern.ReplaceAllString(line, "${1}"+DefaultRedactionText)
	for _, p := range textValuePatterns {
		out = p.ReplaceAllString(out, DefaultRedactionText)
	}
	return out
}
