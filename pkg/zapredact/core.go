// Package zapredact applies the scrublog rule registry to zap loggers, so
// applications already standardized on zap get the same field-name redaction
// as the scrublog facade.
package zapredact

import (
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"

	"github.com/deedflow/scrublog/pkg/sanitize"
)

// Core wraps a zapcore.Core so every field passes through the redaction rules
// before encoding.
type Core struct {
	zapcore.Core
	sanitizer *sanitize.Sanitizer
}

// Wrap returns a Core applying s to all fields written through it. A nil
// sanitizer uses the package defaults.
func Wrap(inner zapcore.Core, s *sanitize.Sanitizer) zapcore.Core {
	if s == nil {
		s = sanitize.New(sanitize.DefaultConfig())
	}
	return &Core{Core: inner, sanitizer: s}
}

// With binds redacted fields to the inner core.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	return &Core{Core: c.Core.With(c.redactAll(fields)), sanitizer: c.sanitizer}
}

// Check registers this core for entries it is enabled for, so Write sees the
// fields before the inner encoder does.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write redacts the fields and delegates to the inner core.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, c.redactAll(fields))
}

func (c *Core) redactAll(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		out[i] = c.redactField(f)
	}
	return out
}

func (c *Core) redactField(f zapcore.Field) zapcore.Field {
	switch f.Type {
	case zapcore.ReflectType:
		if v, ok := c.sanitizer.RedactField(f.Key, f.Interface); ok {
			return zapcore.Field{Key: f.Key, Type: zapcore.ReflectType, Interface: v}
		}
		// Unmatched reflected values may still hold sensitive nested fields.
		return zapcore.Field{Key: f.Key, Type: zapcore.ReflectType, Interface: c.sanitizer.Sanitize(f.Interface)}
	default:
		if v, ok := c.sanitizer.RedactField(f.Key, fieldValue(f)); ok {
			return zapcore.Field{Key: f.Key, Type: zapcore.StringType, String: asString(v)}
		}
		return f
	}
}

// fieldValue recovers the concrete value of a zap field for partial
// redaction. Types without a useful string form fall back to the field's
// interface payload.
func fieldValue(f zapcore.Field) any {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.BoolType:
		return f.Integer == 1
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return f.Integer
	case zapcore.Float64Type:
		return math.Float64frombits(uint64(f.Integer))
	case zapcore.Float32Type:
		return math.Float32frombits(uint32(f.Integer))
	default:
		return f.Interface
	}
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
