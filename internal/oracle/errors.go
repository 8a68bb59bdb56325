package oracle

import (
	"fmt"
	"time"
)

// ExitError reports a nonzero exit from the oracle process. Output holds
// the captured combined stdout/stderr verbatim so failures can be
// diagnosed without re-running.
type ExitError struct {
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("oracle exited with code %d: %s", e.Code, e.Output)
}

// TimeoutError reports that the oracle did not finish within the
// configured deadline. It is distinct from ExitError so callers can tell
// hang-ups apart from logic errors.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("oracle timed out after %s", e.Timeout)
}
