// Package runlog provides file-based debug logging for engine runs.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes timestamped debug lines to a log file. It is nil-safe:
// a nil or file-less logger is a no-op, so callers never guard calls.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

// New creates a logger writing to the specified path, creating parent
// directories as needed. An empty path returns a no-op logger.
func New(logPath string) (*Logger, error) {
	if logPath == "" {
		return &Logger{}, nil
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := &Logger{file: f}
	logger.Log("=== Run log started at %s ===", time.Now().Format(time.RFC3339))
	return logger, nil
}

// ForWorkspace creates a logger under the workspace's .agenttree/logs
// directory, named by phase. Returns a no-op logger on failure.
func ForWorkspace(workspaceRoot, phase string) *Logger {
	logPath := filepath.Join(workspaceRoot, ".agenttree", "logs", phase+".log")
	logger, err := New(logPath)
	if err != nil {
		return &Logger{}
	}
	return logger
}

// Nop returns a no-op logger for tests or when logging is disabled.
func Nop() *Logger {
	return &Logger{}
}

// Log writes a timestamped message to the log.
func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil || l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, msg)
	l.file.Sync()
}

// Close closes the log file. Safe on nil or file-less loggers.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}
