package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLoggerAddsContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "production", "info")

	ctx := WithTraceID(WithRequestID(context.Background(), "req-1"), "trace-9")
	logger.InfoContext(ctx, "hello", "film_id", 3)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "trace-9", record["trace_id"])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "development", "warn")

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestRepoLogger(t *testing.T) {
	var buf bytes.Buffer
	rl := &RepoLogger{tableName: "films", logger: NewLogger(&buf, "production", "debug")}

	rl.LogCreate(context.Background(), map[string]interface{}{"id": 1})
	rl.LogError(context.Background(), errors.New("nope"), "update")

	out := buf.String()
	assert.Contains(t, out, `"table":"films"`)
	assert.Contains(t, out, `"operation":"create"`)
	assert.Contains(t, out, `"error":"nope"`)
}

func TestServiceSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := Tracer
	Tracer = tp.Tracer("test")
	t.Cleanup(func() { Tracer = prev })

	_, span := StartServiceSpan(context.Background(), "FilmService", "AddLike", attribute.Int64("film.id", 1))
	EndSpan(span, nil)
	_, span = StartServiceSpan(context.Background(), "UserService", "AddFriend")
	EndSpan(span, errors.New("boom"))

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "FilmService.AddLike", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, "UserService.AddFriend", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "filmorate"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
