package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestNewWritesToOutputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := New(Options{Level: "warning", Encoding: "json", Outputs: []string{path}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("filtered out")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "filtered out") {
		t.Fatalf("info entry should be below warning level: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"timestamp"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New(Options{Encoding: "xml"}); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"err":     zapcore.ErrorLevel,
		"7":       zapcore.DebugLevel,
		"notice":  zapcore.InfoLevel,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", name, got, want)
		}
	}
}
