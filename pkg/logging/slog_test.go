package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deedflow/scrublog/pkg/logging"
)

func newSlogCapture(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	handler := logging.NewRedactingHandler(slog.NewJSONHandler(&buf, nil), nil)
	return slog.New(handler), &buf
}

func TestRedactingHandler_RedactsMatchingAttrs(t *testing.T) {
	logger, buf := newSlogCapture(t)

	logger.Info("owner contacted",
		slog.String("email", "jane@example.com"),
		slog.String("parcel_id", "ABC123456789"),
		slog.String("county", "Blair"),
	)

	output := buf.String()
	assert.NotContains(t, output, "jane@example.com")
	assert.NotContains(t, output, "ABC123456789")
	assert.Contains(t, output, "[REDACTED]")
	assert.Contains(t, output, "ABC...")
	assert.Contains(t, output, "Blair")
}

func TestRedactingHandler_RecursesIntoGroups(t *testing.T) {
	logger, buf := newSlogCapture(t)

	logger.Info("property",
		slog.Group("owner",
			slog.String("owner_name", "Jane Doe"),
			slog.String("county", "Blair"),
		),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	owner, ok := entry["owner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", owner["owner_name"])
	assert.Equal(t, "Blair", owner["county"])
}

func TestRedactingHandler_MatchingGroupKeyRedactedWhole(t *testing.T) {
	logger, buf := newSlogCapture(t)

	// A group named after a sensitive field is replaced wholesale.
	logger.Info("geo",
		slog.Group("coordinates",
			slog.Float64("x", 40.1),
			slog.Float64("y", -78.4),
		),
	)

	output := buf.String()
	assert.NotContains(t, output, "40.1")
	assert.Contains(t, output, "[REDACTED]")
}

func TestRedactingHandler_SanitizesAnyValues(t *testing.T) {
	logger, buf := newSlogCapture(t)

	logger.Info("payload", slog.Any("record", map[string]any{
		"email": "jane@example.com",
		"id":    "prop-1",
	}))

	output := buf.String()
	assert.NotContains(t, output, "jane@example.com")
	assert.Contains(t, output, "prop-1")
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := logging.NewRedactingHandler(slog.NewJSONHandler(&buf, nil), nil)
	logger := slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("phone", "8145551234"),
	}))

	logger.Info("bound attrs")

	output := buf.String()
	assert.NotContains(t, output, "8145551234")
	assert.Contains(t, output, "814...")
}

func TestRedactingHandler_DelegatesLevel(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(logging.NewRedactingHandler(inner, nil))

	logger.Info("below threshold")
	assert.Empty(t, buf.String())

	logger.Warn("at threshold")
	assert.NotEmpty(t, buf.String())
}
