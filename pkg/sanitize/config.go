package sanitize

// DefaultRedactionText is the placeholder written in place of fully redacted
// values.
const DefaultRedactionText = "[REDACTED]"

// Config holds the redaction settings for a sanitizer. A Config is immutable
// after construction; the With methods derive new copies and never mutate the
// receiver, so the process-wide defaults cannot be changed from a call site.
type Config struct {
	// RedactionText replaces fully redacted values.
	RedactionText string

	// PreserveStackTraces controls whether error stack traces survive
	// sanitization.
	PreserveStackTraces bool

	// Rules is the ordered rule list. Evaluation is first-match-wins.
	Rules []Rule
}

// DefaultConfig returns the built-in configuration: the default rule set,
// "[REDACTED]" as placeholder, stack traces preserved.
func DefaultConfig() Config {
	return Config{
		RedactionText:       DefaultRedactionText,
		PreserveStackTraces: true,
		Rules:               DefaultRules(),
	}
}

// WithRules returns a copy of the config with the given rules appended after
// the existing ones. Built-in rules are only ever extended, never replaced,
// so the default protections cannot be silently disabled.
func (c Config) WithRules(rules ...Rule) Config {
	merged := make([]Rule, 0, len(c.Rules)+len(rules))
	merged = append(merged, c.Rules...)
	merged = append(merged, rules...)
	c.Rules = merged
	return c
}

// WithRedactionText returns a copy of the config with a different
// full-redaction placeholder.
func (c Config) WithRedactionText(text string) Config {
	c.RedactionText = text
	return c
}

// WithStackTraces returns a copy of the config with stack trace preservation
// set to preserve.
func (c Config) WithStackTraces(preserve bool) Config {
	c.PreserveStackTraces = preserve
	return c
}
