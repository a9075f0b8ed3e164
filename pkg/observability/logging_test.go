package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"xyzzy", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("not a JSON record: %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestInitLogger_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Service: "conveyor", Output: &buf})

	logger.Debug("dropped")
	logger.Info("offers calculated", "count", 4)

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (debug is below the level)", len(records))
	}
	if records[0]["service"] != "conveyor" || records[0]["msg"] != "offers calculated" {
		t.Errorf("record = %v", records[0])
	}
	if _, ok := records[0]["trace_id"]; ok {
		t.Error("trace_id set without a span")
	}
	if slog.Default().Handler() != logger.Handler() {
		t.Error("InitLogger did not set the default logger")
	}
}

func TestInitLogger_TextIsDefault(t *testing.T) {
	var buf bytes.Buffer
	InitLogger(LogConfig{Level: "warn", Output: &buf}).Warn("rate below floor", "rate", "0.5")

	if !strings.Contains(buf.String(), `msg="rate below floor"`) {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestInitLogger_TraceCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Format: "json", Output: &buf}).With("component", "usecase")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0xab},
		SpanID:  trace.SpanID{0xcd},
	})
	logger.InfoContext(trace.ContextWithSpanContext(context.Background(), sc), "credit calculated")

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0]["trace_id"] != sc.TraceID().String() || records[0]["span_id"] != sc.SpanID().String() {
		t.Errorf("record = %v", records[0])
	}
	if records[0]["component"] != "usecase" {
		t.Error("attributes lost through WithAttrs")
	}
}
