package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSinkVerbosityLowersLevel(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewSink(Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	defer sink.Close()

	sink.Logger().Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}

	sink.SetVerbosity(1)
	sink.Logger().Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG shown") {
		t.Fatalf("expected debug line after verbosity increase, got %q", buf.String())
	}

	sink.SetVerbosity(0)
	if sink.Level() != slog.LevelInfo {
		t.Fatalf("expected level reset to info, got %v", sink.Level())
	}
}

func TestVerbosityLevel(t *testing.T) {
	tests := []struct {
		base    slog.Level
		warning int
		want    slog.Level
	}{
		{slog.LevelInfo, -3, slog.LevelInfo},
		{slog.LevelInfo, 0, slog.LevelInfo},
		{slog.LevelInfo, 1, slog.LevelDebug},
		{slog.LevelInfo, 3, slog.LevelDebug - 2},
		{slog.LevelDebug - 10, 1, slog.LevelDebug - 10},
		{slog.LevelError, 0, slog.LevelError},
	}
	for _, tc := range tests {
		if got := VerbosityLevel(tc.base, tc.warning); got != tc.want {
			t.Errorf("VerbosityLevel(%v, %d) = %v, want %v", tc.base, tc.warning, got, tc.want)
		}
	}
}

func TestSinkTeesIntoJSONFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "vlc.log")
	sink, err := NewSink(Options{Level: "info", Writer: &console, FilePath: path})
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	NewComponentLogger(sink.Logger(), "intf").Info("program terminated", String(FieldRunID, "abc"))
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}

	if !strings.Contains(console.String(), "INFO intf: program terminated run_id=abc") {
		t.Fatalf("unexpected console output %q", console.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("decode json line %q: %v", data, err)
	}
	if record["msg"] != "program terminated" || record["level"] != "info" || record["component"] != "intf" {
		t.Fatalf("unexpected json record %v", record)
	}
}

func TestNewSinkFailsOnUnwritableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	if _, err := NewSink(Options{FilePath: filepath.Join(blocker, "vlc.log"), Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error when log directory is a file")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestPrettyHandlerGroupsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.WithGroup("net").Info("channel", String("server", "a b"), Int("port", 6010))
	out := buf.String()
	if !strings.Contains(out, `net.server="a b"`) || !strings.Contains(out, "net.port=6010") {
		t.Fatalf("unexpected formatting %q", out)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	WarnWithContext(logger, "channels disabled", "channels_init_failed", String(FieldImpact, "channel management is deactivated"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[FieldEventType] != "channels_init_failed" {
		t.Fatalf("missing event type: %v", record)
	}
	if record[FieldErrorHint] == nil {
		t.Fatalf("missing error hint: %v", record)
	}
	if record[FieldImpact] != "channel management is deactivated" {
		t.Fatalf("caller impact should win: %v", record)
	}
}

func TestTeeHandlerSkipsDisabledBranches(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	h := TeeHandler(
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
		nil,
	)
	logger := slog.New(h)
	logger.Info("info only")
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected tee enabled for info")
	}
	if !strings.Contains(infoBuf.String(), "info only") || errBuf.Len() != 0 {
		t.Fatalf("unexpected routing: info=%q err=%q", infoBuf.String(), errBuf.String())
	}
	if _, ok := TeeHandler(nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for nil-only handlers")
	}
}
