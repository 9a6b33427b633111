package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestCloudRunHandlerWritesSeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo)).With("request_id", "r1")

	log.Warn("tool session close failed", "error", errors.New("closed"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if event["severity"] != "WARNING" || event["message"] != "tool session close failed" {
		t.Fatalf("unexpected event: %v", event)
	}
	data, _ := event["data"].(map[string]any)
	if data["request_id"] != "r1" || data["error"] != "closed" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelWarn))

	log.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("FromContext must never return nil")
	}

	base := slog.New(NewTestHandler(slog.LevelInfo))
	ctx := ToContext(context.Background(), base)
	if FromContext(ctx) != base {
		t.Fatalf("expected stored logger")
	}

	enriched, ctx := With(ctx, "session_id", "s1")
	if FromContext(ctx) != enriched {
		t.Fatalf("With should store the enriched logger")
	}
	if IsDebugEnabled(ctx) {
		t.Fatalf("debug should be disabled at info level")
	}
}
