// Package sanitize redacts personally identifiable information from JSON-like
// values. Sensitivity is decided by field name against an ordered rule list;
// values are never inspected. The built-in rules cover the identifiers handled
// by the deedflow platform: emails, street and mailing addresses, owner names,
// coordinates, parcel IDs, IP addresses, phone numbers, SSNs and card numbers.
package sanitize

// Sanitizer applies an immutable Config to arbitrary nested values. It holds
// no mutable state and is safe for concurrent use.
type Sanitizer struct {
	cfg Config
}

// New returns a Sanitizer for the given config. Zero-valued config fields are
// filled from the defaults.
func New(cfg Config) *Sanitizer {
	if cfg.RedactionText == "" {
		cfg.RedactionText = DefaultRedactionText
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	return &Sanitizer{cfg: cfg}
}

// defaultSanitizer backs the package-level functions. It is built once at
// process start and read-only afterwards.
var defaultSanitizer = New(DefaultConfig())

// Sanitize redacts v using the process-wide default configuration.
func Sanitize(v any) any { return defaultSanitizer.Sanitize(v) }

// ContainsSensitiveData reports whether v holds sensitive fields under the
// process-wide default configuration.
func ContainsSensitiveData(v any) bool { return defaultSanitizer.ContainsSensitiveData(v) }

// Config returns a copy of the sanitizer's configuration.
func (s *Sanitizer) Config() Config { return s.cfg }

// Sanitize returns a redacted copy of v. Maps and slices are rebuilt with the
// same shape; primitives at the top level pass through unchanged, since
// redaction only triggers in the context of a named field.
//
// Circular structures are not detected: a self-referencing value recurses
// until the stack is exhausted. Callers must not pass cyclic data.
func (s *Sanitizer) Sanitize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case error:
		return s.sanitizeError(val)
	case map[string]any:
		return s.sanitizeMap(val)
	case []any:
		return s.sanitizeSlice(val)
	default:
		return v
	}
}

// RedactField applies the first matching rule for the field name to value. It
// reports false and returns the value untouched when no rule matches. This is
// the per-field hook used by the log handler adapters.
func (s *Sanitizer) RedactField(field string, value any) (any, bool) {
	rule, ok := match(s.cfg.Rules, field)
	if !ok {
		return value, false
	}
	return redact(value, rule, s.cfg.RedactionText), true
}

func (s *Sanitizer) sanitizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if rule, ok := match(s.cfg.Rules, k); ok {
			out[k] = redact(v, rule, s.cfg.RedactionText)
			continue
		}
		switch val := v.(type) {
		case map[string]any:
			out[k] = s.sanitizeMap(val)
		case []any:
			out[k] = s.sanitizeSlice(val)
		case error:
			out[k] = s.sanitizeError(val)
		default:
			out[k] = v
		}
	}
	return out
}

func (s *Sanitizer) sanitizeSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = s.Sanitize(v)
	}
	return out
}

// sanitizeError flattens an error into a record of name, message, optional
// stack and any structured fields the error carries. Name and message are
// fixed error fields, treated as plain strings rather than run through the
// field-name rules; attached fields are sanitized exactly like a plain object.
func (s *Sanitizer) sanitizeError(err error) map[string]any {
	out := map[string]any{
		"name":    errorName(err),
		"message": err.Error(),
	}
	if s.cfg.PreserveStackTraces {
		if st, ok := err.(interface{ Stack() string }); ok && st.Stack() != "" {
			out["stack"] = st.Stack()
		}
	}
	if fe, ok := err.(interface{ Fields() map[string]any }); ok && len(fe.Fields()) > 0 {
		for k, v := range s.sanitizeMap(fe.Fields()) {
			switch k {
			case "name", "message", "stack":
				// Attached fields must not shadow the error record itself.
			default:
				out[k] = v
			}
		}
	}
	return out
}

// ContainsSensitiveData reports whether sanitizing v would redact at least one
// field. It performs the same traversal as Sanitize but never mutates its
// input and short-circuits on the first field-name match at any depth.
func (s *Sanitizer) ContainsSensitiveData(v any) bool {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			if _, ok := match(s.cfg.Rules, k); ok {
				return true
			}
			if s.ContainsSensitiveData(elem) {
				return true
			}
		}
	case []any:
		for _, elem := range val {
			if s.ContainsSensitiveData(elem) {
				return true
			}
		}
	case error:
		if fe, ok := val.(interface{ Fields() map[string]any }); ok {
			return s.ContainsSensitiveData(fe.Fields())
		}
	}
	return false
}
