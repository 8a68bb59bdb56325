// Package solve implements the solve driver: dependency- and
// child-aware postorder traversal of a decomposed task tree, invoking
// the oracle once per task with a rendered snapshot of the whole tree.
package solve

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

// DefaultMaxDepth bounds recursion. The dependents graph carries no
// cycle detection; the ceiling converts a cyclic graph from unbounded
// recursion into a diagnosable failure.
const DefaultMaxDepth = 64

// DepthError reports that traversal exceeded the recursion ceiling,
// almost always because the dependents graph is cyclic.
type DepthError struct {
	Path  string
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("recursion depth %d exceeded at %s (cyclic dependents?)", e.Depth, e.Path)
}

// Options configures a solve run.
type Options struct {
	// Root fixes the tree-context rendering root for the whole run.
	// Empty means auto-discovery from the initial task.
	Root string
	// MaxDepth bounds recursion; zero means DefaultMaxDepth.
	MaxDepth int
	// Journal optionally records each invocation. Nil disables history.
	Journal *journal.Recorder
	// Log optionally receives debug lines. Nil disables logging.
	Log *runlog.Logger
	// Progress optionally receives human-readable progress lines.
	Progress func(format string, args ...interface{})
}

// Driver solves one task tree. Bookkeeping is per-driver, never
// process-wide; create a fresh Driver per run.
type Driver struct {
	oracle   oracle.Oracle
	root     string
	maxDepth int
	solved   map[string]bool
	journal  *journal.Recorder
	log      *runlog.Logger
	progress func(format string, args ...interface{})
}

// New creates a Driver for one solve run.
func New(o oracle.Oracle, opts Options) *Driver {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Driver{
		oracle:   o,
		root:     opts.Root,
		maxDepth: maxDepth,
		solved:   make(map[string]bool),
		journal:  opts.Journal,
		log:      opts.Log,
		progress: opts.Progress,
	}
}

// Solved returns the number of tasks solved so far.
func (d *Driver) Solved() int {
	return len(d.solved)
}

func (d *Driver) emit(format string, args ...interface{}) {
	if d.progress != nil {
		d.progress(format, args...)
	}
	d.log.Log(format, args...)
}

// Run solves the tree reachable from taskPath: all of a task's
// dependents (in source order) and children (sorted) are solved strictly
// before the task itself, and no task is solved twice even when reached
// through both a dependents edge and a child edge.
func (d *Driver) Run(ctx context.Context, taskPath string) error {
	abs, err := filepath.Abs(taskPath)
	if err != nil {
		return fmt.Errorf("resolve task %s: %w", taskPath, err)
	}

	if d.root == "" {
		d.root = tree.FindRoot(abs)
		d.emit("workspace root: %s", d.root)
	}

	return d.solve(ctx, abs, 0)
}

func (d *Driver) solve(ctx context.Context, taskPath string, depth int) error {
	if d.solved[taskPath] {
		return nil
	}
	if depth > d.maxDepth {
		return &DepthError{Path: taskPath, Depth: depth}
	}

	content, err := os.ReadFile(taskPath)
	if err != nil {
		return fmt.Errorf("read task %s: %w", taskPath, err)
	}

	for _, dependent := range markdown.ResolveDependents(taskPath, string(content)) {
		if d.solved[dependent] {
			continue
		}
		d.emit("solving dependency of %s: %s", models.TaskName(taskPath), dependent)
		if err := d.solve(ctx, dependent, depth+1); err != nil {
			return err
		}
	}

	children, err := tree.ListChildren(taskPath)
	if err != nil {
		return err
	}
	for _, child := range children {
		if d.solved[child] {
			continue
		}
		d.emit("solving child of %s: %s", models.TaskName(taskPath), child)
		if err := d.solve(ctx, child, depth+1); err != nil {
			return err
		}
	}

	treeContext, err := tree.Render(d.root, taskPath)
	if err != nil {
		return fmt.Errorf("render tree context for %s: %w", taskPath, err)
	}

	// Re-read from disk: solving the children may have amended this
	// document, and human edits between phases must always be observed.
	content, err = os.ReadFile(taskPath)
	if err != nil {
		return fmt.Errorf("read task %s: %w", taskPath, err)
	}

	d.emit("solving task: %s", taskPath)
	prompt := buildPrompt(taskPath, string(content), treeContext)

	start := time.Now()
	invokeErr := d.oracle.Invoke(ctx, oracle.Request{Prompt: prompt, WorkDir: filepath.Dir(taskPath)})
	d.record(taskPath, start, invokeErr)

	if invokeErr != nil {
		return fmt.Errorf("solve %s: %w", taskPath, invokeErr)
	}

	d.solved[taskPath] = true
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
