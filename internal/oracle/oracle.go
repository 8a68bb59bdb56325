// Package oracle provides the gateway to the external problem-solving
// process. Both engines funnel every invocation through the single
// Oracle interface so backends (the claude CLI, the Anthropic API, or a
// scripted stub in tests) can be swapped without touching driver logic.
package oracle

import "context"

// Request describes one synchronous oracle invocation.
type Request struct {
	// Prompt is the full text handed to the oracle.
	Prompt string
	// WorkDir is the directory the oracle runs in, so relative file
	// creation lands beside the task it concerns.
	WorkDir string
}

// Oracle runs the external solving process once, synchronously. There is
// no retry and no fallback: a nonzero exit surfaces as *ExitError with
// the captured diagnostics, and an expired deadline as *TimeoutError.
type Oracle interface {
	Invoke(ctx context.Context, req Request) error
}
