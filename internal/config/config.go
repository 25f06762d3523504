// Package config provides configuration loading and validation for scrublog.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deedflow/scrublog/pkg/logging"
	"github.com/deedflow/scrublog/pkg/sanitize"
)

// Environment overrides, read once at load time.
const (
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "SCRUBLOG_LOG_LEVEL"
	// EnvDisabled disables all log output when set to "1" or "true".
	EnvDisabled = "SCRUBLOG_DISABLED"
)

// Config represents the scrublog configuration file.
type Config struct {
	Logging   LoggingSettings   `yaml:"logging"`
	Redaction RedactionSettings `yaml:"redaction"`
}

// LoggingSettings contains facade configuration.
type LoggingSettings struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Disabled   bool   `yaml:"disabled"`
	Timestamps bool   `yaml:"timestamps"`
}

// RedactionSettings contains sanitizer configuration.
type RedactionSettings struct {
	Text                string     `yaml:"text"`
	PreserveStackTraces bool       `yaml:"preserve_stack_traces"`
	Rules               []RuleSpec `yaml:"rules"`
}

// RuleSpec is a custom redaction rule as written in the config file. Custom
// rules are appended after the built-in ones; they can extend but never
// replace the default protections.
type RuleSpec struct {
	Pattern       string `yaml:"pattern"`
	Regex         bool   `yaml:"regex"`
	Style         string `yaml:"style"` // "full" (default) or "partial"
	PreserveChars int    `yaml:"preserve_chars"`
}

// Default returns the configuration used when no file is given. File loading
// starts from these values, so omitted fields keep their defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingSettings{
			Level:      "info",
			Format:     "text",
			Timestamps: true,
		},
		Redaction: RedactionSettings{
			Text:                sanitize.DefaultRedactionText,
			PreserveStackTraces: true,
		},
	}
}

// Load reads and parses the configuration file, applying environment
// overrides afterwards. An empty path loads defaults plus environment. Every
// call produces a fresh Config; loading never mutates shared state.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv(EnvDisabled); v != "" {
		c.Logging.Disabled = v == "1" || strings.EqualFold(v, "true")
	}
}

// validate rejects malformed settings. Unknown level strings are not an
// error: they fall back to the default level at parse time.
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	for i, spec := range c.Redaction.Rules {
		if _, err := spec.Rule(); err != nil {
			return fmt.Errorf("redaction.rules[%d]: %w", i, err)
		}
	}

	return nil
}

// Rule converts the spec into a sanitize.Rule.
func (s RuleSpec) Rule() (sanitize.Rule, error) {
	if s.Pattern == "" {
		return sanitize.Rule{}, fmt.Errorf("rule pattern is required")
	}
	if s.PreserveChars < 0 {
		return sanitize.Rule{}, fmt.Errorf("preserve_chars must not be negative")
	}

	rule := sanitize.Rule{
		Kind:          sanitize.KindCustom,
		Style:         sanitize.StyleFull,
		PreserveChars: s.PreserveChars,
	}

	switch strings.ToLower(s.Style) {
	case "", "full":
	case "partial":
		rule.Style = sanitize.StylePartial
	default:
		return sanitize.Rule{}, fmt.Errorf("unknown redaction style %q", s.Style)
	}

	if s.Regex {
		expr, err := regexp.Compile("(?i)" + s.Pattern)
		if err != nil {
			return sanitize.Rule{}, fmt.Errorf("invalid rule pattern %q: %w", s.Pattern, err)
		}
		rule.Expr = expr
	} else {
		rule.Pattern = s.Pattern
	}

	return rule, nil
}

// SanitizeConfig builds the immutable sanitizer configuration: defaults,
// overridden placeholder text and stack trace handling, and custom rules
// appended after the built-in set.
func (c *Config) SanitizeConfig() (sanitize.Config, error) {
	sc := sanitize.DefaultConfig()
	if c.Redaction.Text != "" {
		sc = sc.WithRedactionText(c.Redaction.Text)
	}
	sc = sc.WithStackTraces(c.Redaction.PreserveStackTraces)

	if len(c.Redaction.Rules) > 0 {
		rules := make([]sanitize.Rule, 0, len(c.Redaction.Rules))
		for i, spec := range c.Redaction.Rules {
			rule, err := spec.Rule()
			if err != nil {
				return sanitize.Config{}, fmt.Errorf("redaction.rules[%d]: %w", i, err)
			}
			rules = append(rules, rule)
		}
		sc = sc.WithRules(rules...)
	}

	return sc, nil
}

// LoggerOptions converts the file and environment settings into facade
// options.
func (c *Config) LoggerOptions() (logging.Options, error) {
	sc, err := c.SanitizeConfig()
	if err != nil {
		return logging.Options{}, err
	}

	return logging.Options{
		Level:      logging.ParseLevel(c.Logging.Level),
		Format:     logging.ParseFormat(c.Logging.Format),
		Disabled:   c.Logging.Disabled,
		Timestamps: c.Logging.Timestamps,
		Sanitizer:  sanitize.New(sc),
	}, nil
}
