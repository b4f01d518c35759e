package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func captureLogger(buf *bytes.Buffer) *Logger {
	return NewWithHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestModuleAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := captureLogger(&buf).Module("distributor")
	l.Info("claim accepted", "amount", 100)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if rec["module"] != "distributor" {
		t.Fatalf("module = %v, want distributor", rec["module"])
	}
	if rec["msg"] != "claim accepted" {
		t.Fatalf("msg = %v", rec["msg"])
	}
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	l := captureLogger(&buf).With("root", "0xabc")
	l.Warn("proof rejected")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if rec["root"] != "0xabc" {
		t.Fatalf("root = %v, want 0xabc", rec["root"])
	}
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	before := Default()
	SetDefault(nil)
	if Default() != before {
		t.Fatal("SetDefault(nil) must not replace the default logger")
	}
}
