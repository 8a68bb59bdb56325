package oracle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestNewCLIDefaults(t *testing.T) {
	c := NewCLI("", 0)
	if c.Command != "claude" {
		t.Errorf("Command = %q, want claude", c.Command)
	}
}

func TestCLIInvokeSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires unix coreutils")
	}

	// "true" ignores the claude-style flags and exits 0.
	c := NewCLI("true", time.Minute)
	err := c.Invoke(context.Background(), Request{Prompt: "noop", WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Invoke = %v, want nil", err)
	}
}

func TestCLIInvokeNonzeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires unix coreutils")
	}

	c := NewCLI("false", time.Minute)
	err := c.Invoke(context.Background(), Request{Prompt: "noop"})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Invoke = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
}

func TestCLIInvokeTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires unix shell")
	}

	// The background sleep inherits the output pipe, so the invocation
	// must return once the kill grace elapses, not when the grandchild
	// finally exits.
	script := filepath.Join(t.TempDir(), "slow-oracle")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 30 &\nsleep 30\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	c := NewCLI(script, 200*time.Millisecond)
	start := time.Now()
	err := c.Invoke(context.Background(), Request{Prompt: "noop"})
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Invoke = %v, want *TimeoutError", err)
	}
	if timeoutErr.Timeout != 200*time.Millisecond {
		t.Errorf("Timeout = %s, want 200ms", timeoutErr.Timeout)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("timed-out invocation should not be an *ExitError, got %v", err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Invoke returned after %s, deadline not enforced", elapsed)
	}
}

func TestCLIInvokeCanceled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires unix coreutils")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCLI("true", time.Minute)
	err := c.Invoke(ctx, Request{Prompt: "noop"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Invoke = %v, want wrapped context.Canceled", err)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("cancellation should not be an *ExitError, got %v", err)
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		t.Errorf("cancellation should not be a *TimeoutError, got %v", err)
	}
}

func TestCLIInvokeMissingCommand(t *testing.T) {
	c := NewCLI("agenttree-no-such-binary", time.Minute)
	err := c.Invoke(context.Background(), Request{Prompt: "noop"})
	if err == nil {
		t.Fatal("Invoke = nil, want error")
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("missing binary should not be an *ExitError, got %v", err)
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		t.Errorf("missing binary should not be a *TimeoutError, got %v", err)
	}
}

func TestCheckInstalled(t *testing.T) {
	if err := NewCLI("agenttree-no-such-binary", 0).CheckInstalled(); err == nil {
		t.Error("CheckInstalled = nil for missing binary, want error")
	}
	if runtime.GOOS != "windows" {
		if err := NewCLI("true", 0).CheckInstalled(); err != nil {
			t.Errorf("CheckInstalled(true) = %v, want nil", err)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	exitErr := &ExitError{Code: 2, Output: "boom"}
	if exitErr.Error() != "oracle exited with code 2: boom" {
		t.Errorf("ExitError.Error() = %q", exitErr.Error())
	}

	timeoutErr := &TimeoutError{Timeout: 5 * time.Second}
	if timeoutErr.Error() != "oracle timed out after 5s" {
		t.Errorf("TimeoutError.Error() = %q", timeoutErr.Error())
	}
}
