package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newCapturedLogger(buf *bytes.Buffer) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(buf, nil))}
}

func TestWithContext(t *testing.T) {
	t.Run("attaches request and actor ids", func(t *testing.T) {
		var buf bytes.Buffer
		log := newCapturedLogger(&buf)

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
		ctx = context.WithValue(ctx, ActorIDKey, "actor-456")
		log.WithContext(ctx).Info("handled")

		out := buf.String()
		if !strings.Contains(out, "request_id=req-123") {
			t.Fatalf("missing request id: %s", out)
		}
		if !strings.Contains(out, "actor_id=actor-456") {
			t.Fatalf("missing actor id: %s", out)
		}
	})

	t.Run("empty context adds nothing", func(t *testing.T) {
		var buf bytes.Buffer
		log := newCapturedLogger(&buf)

		log.WithContext(context.Background()).Info("handled")

		out := buf.String()
		if strings.Contains(out, "request_id") || strings.Contains(out, "actor_id") {
			t.Fatalf("unexpected context attrs: %s", out)
		}
	})
}
