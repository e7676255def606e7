package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		if parseLevel(lvl) == nil {
			t.Errorf("expected level for %q", lvl)
		}
	}
	if parseLevel("verbose") != nil {
		t.Error("unknown level should return nil")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studio.log")

	log, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	log.With(String("op", "create")).Warn("remote call failed", Error(errors.New("boom")))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "remote call failed") || !strings.Contains(string(data), "create") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("ignored", Int("n", 1))
	if err := log.Sync(); err != nil {
		t.Errorf("nop sync: %v", err)
	}
}
