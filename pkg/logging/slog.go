package logging

import (
	"context"
	"log/slog"

	"github.com/deedflow/scrublog/pkg/sanitize"
)

// RedactingHandler wraps a slog.Handler so every attribute passes through the
// sanitizer's rule registry before the inner handler sees it. Groups are
// recursed into; level decisions are delegated unchanged.
type RedactingHandler struct {
	inner     slog.Handler
	sanitizer *sanitize.Sanitizer
}

// NewRedactingHandler wraps inner. A nil sanitizer uses the package defaults.
func NewRedactingHandler(inner slog.Handler, s *sanitize.Sanitizer) *RedactingHandler {
	if s == nil {
		s = sanitize.New(sanitize.DefaultConfig())
	}
	return &RedactingHandler{inner: inner, sanitizer: s}
}

// Enabled delegates the level check to the inner handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle rebuilds the record with redacted attributes and delegates.
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	redacted := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, redacted)
}

// WithAttrs redacts the attrs before binding them to the inner handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		redacted = append(redacted, h.redactAttr(attr))
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(redacted), sanitizer: h.sanitizer}
}

// WithGroup delegates group opening to the inner handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), sanitizer: h.sanitizer}
}

func (h *RedactingHandler) redactAttr(attr slog.Attr) slog.Attr {
	// A matching key wins even over a group value: full redaction replaces
	// nested structures wholesale.
	if v, ok := h.sanitizer.RedactField(attr.Key, attr.Value.Any()); ok {
		return slog.Any(attr.Key, v)
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		group := attr.Value.Group()
		redacted := make([]slog.Attr, 0, len(group))
		for _, nested := range group {
			redacted = append(redacted, h.redactAttr(nested))
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindAny:
		return slog.Any(attr.Key, h.sanitizer.Sanitize(attr.Value.Any()))
	default:
		return attr
	}
}
