package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zapcore.AddSync(&buf), zapcore.InfoLevel, false)

	logger.Infow("Normalized subtitles", "format", "srt", "cues", 3)
	logger.Debugw("hidden at info level")
	_ = logger.Sync()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "Normalized subtitles" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["format"] != "srt" {
		t.Errorf("format = %v", entry["format"])
	}
	if entry["cues"] != float64(3) {
		t.Errorf("cues = %v", entry["cues"])
	}
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zapcore.AddSync(&buf), zapcore.DebugLevel, true)

	logger.Debugw("detected format", "format", "vtt")
	_ = logger.Sync()

	if !bytes.Contains(buf.Bytes(), []byte("detected format")) {
		t.Errorf("debug message missing from output: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Infow("discarded")
}
