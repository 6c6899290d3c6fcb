package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nounmap/internal/config"
)

func TestPrettyHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))
	logger = NewComponentLogger(logger, "matcher")

	logger.Info("candidate kept", String("source", "zhang san"), Int("score", 95))

	line := buf.String()
	if !strings.Contains(line, " INFO matcher: candidate kept") {
		t.Fatalf("missing level/component prefix: %q", line)
	}
	if !strings.Contains(line, `source="zhang san"`) {
		t.Fatalf("expected quoted value with space: %q", line)
	}
	if !strings.Contains(line, "score=95") {
		t.Fatalf("expected score attr: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be promoted to prefix: %q", line)
	}
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	logger.Info("hidden")
	logger.Debug("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "WARN shown") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestWarnWithContextAddsEventType(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, lvl, false))

	WarnWithContext(logger, "chapter skipped", "chapter_parse_failed",
		String(FieldErrorHint, "check the xhtml"),
		Error(errors.New("unexpected EOF")),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json line: %v (%q)", err, buf.String())
	}
	if payload["event_type"] != "chapter_parse_failed" {
		t.Fatalf("event_type = %v", payload["event_type"])
	}
	if payload["level"] != "warn" {
		t.Fatalf("level = %v", payload["level"])
	}
	if payload["error"] != "unexpected EOF" {
		t.Fatalf("error = %v", payload["error"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key in %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello", String(FieldRunID, "abc"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "nounmap.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"run_id":"abc"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestNilComponentLoggerIsNoop(t *testing.T) {
	logger := NewComponentLogger(nil, "x")
	logger.Error("ignored")
	WarnWithContext(nil, "ignored", "x")
}
