package sanitize

import "fmt"

// partialSuffix is the fixed marker appended by partial redaction. It is
// independent of Config.RedactionText so partially redacted values are always
// recognizable regardless of the configured placeholder.
const partialSuffix = "...[REDACTED]"

// redact applies a single rule to a single value.
func redact(v any, r Rule, redactionText string) any {
	if r.Style == StylePartial {
		return redactPartial(v, r.PreserveChars, redactionText)
	}
	// Full redaction replaces the value regardless of its original type.
	return redactionText
}

// redactPartial keeps the first n characters of a string-like value. Nil
// passes through untouched: redaction never invents values. Values too short
// to preserve anything without identifying the original fall back to full
// redaction, as does a partial rule with no usable preserve count.
func redactPartial(v any, n int, redactionText string) any {
	if v == nil {
		return nil
	}
	s := stringify(v)
	if n <= 0 || len(s) <= n {
		return redactionText
	}
	return s[:n] + partialSuffix
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
