package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "decompose.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Log("expanding %s", "task.md")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "expanding task.md") {
		t.Errorf("log missing message: %q", data)
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	var logger *Logger
	logger.Log("should not panic")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil = %v", err)
	}

	nop := Nop()
	nop.Log("also fine")
	if err := nop.Close(); err != nil {
		t.Errorf("Close on nop = %v", err)
	}
}

func TestForWorkspace(t *testing.T) {
	root := t.TempDir()
	logger := ForWorkspace(root, "solve")
	logger.Log("hello")
	logger.Close()

	if _, err := os.Stat(filepath.Join(root, ".agenttree", "logs", "solve.log")); err != nil {
		t.Errorf("expected log file: %v", err)
	}
}
