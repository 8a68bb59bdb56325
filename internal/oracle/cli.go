package oracle

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single oracle invocation unless overridden.
const DefaultTimeout = 10 * time.Minute

// waitDelay bounds how long a timed-out invocation may linger after the
// oracle process is killed. Without it, a grandchild process inheriting
// the output pipe keeps CombinedOutput blocked until the grandchild
// exits, so the deadline would not actually bound the call.
const waitDelay = time.Second

// CLI invokes the claude CLI in headless mode as the oracle.
type CLI struct {
	// Command is the executable name, normally "claude".
	Command string
	// Model is passed through with --model when non-empty.
	Model string
	// Timeout bounds each invocation; zero means DefaultTimeout.
	Timeout time.Duration
}

// NewCLI creates a CLI oracle with the given per-invocation timeout.
func NewCLI(command string, timeout time.Duration) *CLI {
	if command == "" {
		command = "claude"
	}
	return &CLI{Command: command, Timeout: timeout}
}

// Invoke runs the CLI synchronously with req.WorkDir as working
// directory, blocking until it exits or the timeout elapses.
func (c *CLI) Invoke(ctx context.Context, req Request) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"--dangerously-skip-permissions"}
	if c.Model != "" {
		args = append(args, "--model", c.Model)
	}
	args = append(args, "-p", req.Prompt)

	cmd := exec.CommandContext(runCtx, c.Command, args...)
	cmd.WaitDelay = waitDelay
	if req.WorkDir != "" {
		cmd.Dir = req.WorkDir
	}

	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout}
	}
	if ctxErr := runCtx.Err(); ctxErr != nil {
		// Parent cancellation (e.g. interrupt), not a timeout and not an
		// oracle failure.
		return fmt.Errorf("oracle interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Output: string(output)}
	}
	return fmt.Errorf("run %s: %w", c.Command, err)
}

// CheckInstalled verifies the oracle command is available in PATH.
func (c *CLI) CheckInstalled() error {
	if _, err := exec.LookPath(c.Command); err != nil {
		return fmt.Errorf("%s CLI not found in PATH: %w", c.Command, err)
	}
	return nil
}

// Verify CLI implements Oracle at compile time.
var _ Oracle = (*CLI)(nil)
