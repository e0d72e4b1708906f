package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gol.log")
	log, err := New(path, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("rollover armed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "rollover armed") {
		t.Fatalf("log file missing debug entry: %q", data)
	}
}

func TestNewQuietDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gol.log")
	log, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug entry written at info level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("info entry missing")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	log, err := New("", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("nowhere")
}
