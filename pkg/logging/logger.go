// Package logging provides a level-filtered logging facade that sanitizes all
// structured data through pkg/sanitize before emission.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/deedflow/scrublog/pkg/sanitize"
)

// Level represents the severity of a log entry. Levels are ordered; a logger
// emits entries at or above its configured level.
type Level int

// Log severity levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone suppresses all output.
	LevelNone
)

// DefaultLevel is used when a level string cannot be parsed. Configuration
// errors never fail the caller.
const DefaultLevel = LevelInfo

// ParseLevel maps a level name to a Level. Unknown names fall back silently
// to DefaultLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return DefaultLevel
	}
}

// String returns the level tag used in formatted output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	}
	return "UNKNOWN"
}

// Format represents the output format for log entries.
type Format string

// Log output formats.
const (
	// FormatText outputs "[timestamp] [context] LEVEL message data" lines.
	FormatText Format = "text"
	// FormatJSON outputs one JSON object per line.
	FormatJSON Format = "json"
)

// ParseFormat maps a format name to a Format, defaulting to text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// nonSerializable is emitted when data cannot be rendered for display. This is
// a display concern only; it is distinct from the sanitizer's treatment of
// cyclic input, which is a caller precondition (see sanitize.Sanitizer).
const nonSerializable = "[Circular or non-serializable data]"

// Options configure a Logger.
type Options struct {
	Level      Level
	Format     Format
	Disabled   bool
	Timestamps bool
	// Context prefixes every message as "[context]".
	Context string
	// Sanitizer overrides the process-wide default sanitizer.
	Sanitizer *sanitize.Sanitizer
}

// Logger filters by level and sanitizes structured data before writing it to
// its sinks. Errors go to the stderr sink, everything else to the stdout sink.
type Logger struct {
	level      Level
	format     Format
	disabled   bool
	timestamps bool
	context    string
	sanitizer  *sanitize.Sanitizer
	stdout     io.Writer
	stderr     io.Writer
	mu         *sync.Mutex
}

// New creates a Logger with timestamps enabled and the default sanitizer.
func New(level Level, format Format) *Logger {
	return NewWithOptions(Options{Level: level, Format: format, Timestamps: true})
}

// NewWithOptions creates a Logger from explicit options.
func NewWithOptions(opts Options) *Logger {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Sanitizer == nil {
		opts.Sanitizer = sanitize.New(sanitize.DefaultConfig())
	}
	return &Logger{
		level:      opts.Level,
		format:     opts.Format,
		disabled:   opts.Disabled,
		timestamps: opts.Timestamps,
		context:    opts.Context,
		sanitizer:  opts.Sanitizer,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		mu:         &sync.Mutex{},
	}
}

// SetOutput sets custom output writers for testing.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = stdout
	l.stderr = stderr
}

// WithContext returns a logger that prefixes all messages with "[name]". The
// new context replaces any existing one; contexts do not nest. The returned
// logger shares the receiver's sinks, level and sanitizer.
func (l *Logger) WithContext(name string) *Logger {
	clone := *l
	clone.context = name
	return &clone
}

// Debug logs a debug-level message with optional structured data.
func (l *Logger) Debug(msg string, data ...any) { l.log(LevelDebug, msg, data) }

// Info logs an info-level message with optional structured data.
func (l *Logger) Info(msg string, data ...any) { l.log(LevelInfo, msg, data) }

// Warn logs a warn-level message with optional structured data.
func (l *Logger) Warn(msg string, data ...any) { l.log(LevelWarn, msg, data) }

// Error logs an error-level message with optional structured data.
func (l *Logger) Error(msg string, data ...any) { l.log(LevelError, msg, data) }

// jsonEntry is the wire shape of a FormatJSON line.
type jsonEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level"`
	Context   string `json:"context,omitempty"`
	Message   string `json:"message"`
	Data      []any  `json:"data,omitempty"`
}

func (l *Logger) log(level Level, msg string, data []any) {
	// Below-threshold entries must cost nothing: no formatting, no
	// sanitization.
	if l.disabled || level < l.level {
		return
	}

	sanitized := make([]any, 0, len(data))
	for _, d := range data {
		if isEmptyContainer(d) {
			continue
		}
		sanitized = append(sanitized, l.sanitizer.Sanitize(d))
	}

	var line string
	if l.format == FormatJSON {
		line = l.formatJSON(level, msg, sanitized)
	} else {
		line = l.formatText(level, msg, sanitized)
	}

	l.write(level, line)
}

func (l *Logger) formatJSON(level Level, msg string, data []any) string {
	entry := jsonEntry{
		Level:   strings.ToLower(level.String()),
		Context: l.context,
		Message: msg,
		Data:    data,
	}
	if l.timestamps {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	out, err := json.Marshal(entry)
	if err != nil {
		// Some datum is not JSON-encodable. Replace the data with the
		// display placeholder; the entry itself is always encodable then.
		entry.Data = []any{nonSerializable}
		out, err = json.Marshal(entry)
		if err != nil {
			return fmt.Sprintf(`{"level":"error","message":"failed to marshal log entry: %s"}`+"\n", err.Error())
		}
	}
	return string(out) + "\n"
}

func (l *Logger) formatText(level Level, msg string, data []any) string {
	var b strings.Builder
	if l.timestamps {
		b.WriteString("[" + time.Now().UTC().Format(time.RFC3339) + "] ")
	}
	if l.context != "" {
		b.WriteString("[" + l.context + "] ")
	}
	b.WriteString(level.String())
	b.WriteString(" ")
	b.WriteString(msg)
	for _, d := range data {
		b.WriteString(" ")
		b.WriteString(display(d))
	}
	b.WriteString("\n")
	return b.String()
}

// display renders a sanitized value for human-readable output. It must never
// panic: values that cannot be encoded render as a fixed placeholder.
func display(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return nonSerializable
	}
	return string(out)
}

// isEmptyContainer reports whether d carries nothing worth printing.
func isEmptyContainer(d any) bool {
	switch val := d.(type) {
	case nil:
		return true
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}

func (l *Logger) write(level Level, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	writer := l.stdout
	if level == LevelError {
		writer = l.stderr
	}
	_, _ = writer.Write([]byte(line))
}
