// Package decompose implements the decomposition driver: bounded,
// cycle-avoiding recursive expansion of a task document into a plan file
// and a directory of subtask documents.
package decompose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmhart/agenttree/internal/journal"
	"github.com/jmhart/agenttree/internal/markdown"
	"github.com/jmhart/agenttree/internal/oracle"
	"github.com/jmhart/agenttree/internal/runlog"
	"github.com/jmhart/agenttree/internal/tree"
	"github.com/jmhart/agenttree/pkg/models"
)

// DefaultNodeBudget caps oracle invocations per run unless overridden.
const DefaultNodeBudget = 5

// Options configures a decomposition run.
type Options struct {
	// NodeBudget is the maximum oracle invocations for this run; zero
	// means DefaultNodeBudget.
	NodeBudget int
	// Journal optionally records each invocation. Nil disables history.
	Journal *journal.Recorder
	// Log optionally receives debug lines. Nil disables logging.
	Log *runlog.Logger
	// Progress optionally receives human-readable progress lines.
	Progress func(format string, args ...interface{})
}

// Driver expands one task tree. All bookkeeping lives on the driver so
// concurrent or repeated runs in one process never share state; create a
// fresh Driver per run.
type Driver struct {
	oracle   oracle.Oracle
	budget   int
	calls    int
	expanded map[string]bool
	journal  *journal.Recorder
	log      *runlog.Logger
	progress func(format string, args ...interface{})
}

// New creates a Driver for one decomposition run.
func New(o oracle.Oracle, opts Options) *Driver {
	budget := opts.NodeBudget
	if budget <= 0 {
		budget = DefaultNodeBudget
	}
	return &Driver{
		oracle:   o,
		budget:   budget,
		expanded: make(map[string]bool),
		journal:  opts.Journal,
		log:      opts.Log,
		progress: opts.Progress,
	}
}

// Calls returns the number of oracle invocations issued so far.
func (d *Driver) Calls() int {
	return d.calls
}

// emit sends a progress line if a handler is configured, and mirrors it
// to the debug log.
func (d *Driver) emit(format string, args ...interface{}) {
	if d.progress != nil {
		d.progress(format, args...)
	}
	d.log.Log(format, args...)
}

// Run decomposes the task at taskPath, recursing into complex subtasks
// until the tree bottoms out or the node budget is exhausted. Hitting
// the budget is a silent stop, not an error; every I/O or oracle failure
// aborts the run immediately.
func (d *Driver) Run(ctx context.Context, taskPath string) error {
	if d.calls >= d.budget {
		d.emit("node budget (%d) exhausted, skipping %s", d.budget, taskPath)
		return nil
	}

	abs, err := filepath.Abs(taskPath)
	if err != nil {
		return fmt.Errorf("resolve task %s: %w", taskPath, err)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read task %s: %w", abs, err)
	}

	d.calls++
	d.emit("node %d/%d: decomposing %s", d.calls, d.budget, abs)

	name := models.TaskName(abs)
	prompt := buildPrompt(abs, name, string(content))

	start := time.Now()
	invokeErr := d.oracle.Invoke(ctx, oracle.Request{Prompt: prompt, WorkDir: filepath.Dir(abs)})
	d.record(abs, start, invokeErr)

	if invokeErr != nil {
		return fmt.Errorf("decompose %s: %w", abs, invokeErr)
	}
	d.expanded[abs] = true

	children, err := tree.ListChildren(abs)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		d.emit("no children created for %s, treating as simple task", abs)
		return nil
	}

	for _, child := range children {
		if d.expanded[child] {
			continue
		}
		d.expanded[child] = true

		childContent, err := os.ReadFile(child)
		if err != nil {
			return fmt.Errorf("read subtask %s: %w", child, err)
		}

		if markdown.Classify(string(childContent)) == models.KindComplex {
			d.emit("found complex subtask: %s", child)
			if err := d.Run(ctx, child); err != nil {
				return err
			}
		} else {
			d.emit("found simple subtask: %s", child)
		}
	}

	return nil
}

// record journals one oracle invocation; journal failures never abort
// the run.
func (d *Driver) record(taskPath string, start time.Time, invokeErr error) {
	outcome := journal.OutcomeOK
	errText := ""
	if invokeErr != nil {
		errText = invokeErr.Error()
		var timeoutErr *oracle.TimeoutError
		if errors.As(invokeErr, &timeoutErr) {
			outcome = journal.OutcomeTimeout
		} else {
			outcome = journal.OutcomeError
		}
	}

	if err := d.journal.Invocation(taskPath, start, time.Since(start), outcome, errText); err != nil {
		d.log.Log("journal write failed: %v", err)
	}
}
