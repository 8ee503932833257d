package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "survival.log")

	logger, closer, err := New(path, "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("hidden detail")
	logger.Info("session started", "biome", "Lagos, Nigeria")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "session started") || !strings.Contains(out, "survival") {
		t.Errorf("log missing message or prefix: %q", out)
	}
	if strings.Contains(out, "hidden detail") {
		t.Error("debug message written at info level")
	}
}

func TestNewDiscard(t *testing.T) {
	logger, closer, err := New("", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, _, err := New("", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
