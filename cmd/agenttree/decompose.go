package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmhart/agenttree/internal/config"
	"github.com/jmhart/agenttree/internal/decompose"
	"github.com/jmhart/agenttree/internal/journal"
	"github.com/jmhart/agenttree/internal/runlog"
	"github.com/jmhart/agenttree/internal/tree"
)

var (
	decomposeBudget    int
	decomposeTimeout   time.Duration
	decomposeBackend   string
	decomposeModel     string
	decomposeNoJournal bool
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose <task.md>",
	Short: "Expand a task file into a tree of subtask files",
	Long: `Recursively decompose a markdown task file.

For each complex task the oracle creates <name>_plan.md and a
<name>_children/ directory of subtask files, then agenttree recurses
into the children classified as complex. The run stops silently when
the node budget is exhausted.

After decomposition you can edit any generated file before solving.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecompose,
}

func init() {
	decomposeCmd.Flags().IntVar(&decomposeBudget, "budget", 0, "Maximum oracle invocations for this run (default from config)")
	decomposeCmd.Flags().DurationVar(&decomposeTimeout, "timeout", 0, "Per-invocation oracle timeout (default from config)")
	decomposeCmd.Flags().StringVar(&decomposeBackend, "backend", "", "Oracle backend: cli or api (default from config)")
	decomposeCmd.Flags().StringVar(&decomposeModel, "model", "", "Model passed to the oracle (default from config)")
	decomposeCmd.Flags().BoolVar(&decomposeNoJournal, "no-journal", false, "Skip recording the run in the journal")
}

func runDecompose(cmd *cobra.Command, args []string) error {
	taskPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving task path: %w", err)
	}
	if _, err := os.Stat(taskPath); err != nil {
		return fmt.Errorf("task file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if decomposeBudget > 0 {
		cfg.Decompose.NodeBudget = decomposeBudget
	}
	if decomposeTimeout > 0 {
		cfg.Oracle.Timeout = decomposeTimeout
	}
	if decomposeBackend != "" {
		cfg.Oracle.Backend = decomposeBackend
	}
	if decomposeModel != "" {
		cfg.Oracle.Model = decomposeModel
	}

	orc, err := newOracle(cfg)
	if err != nil {
		return err
	}

	workspaceRoot := tree.FindRoot(taskPath)
	logger := runlog.ForWorkspace(workspaceRoot, "decompose")
	defer logger.Close()

	recorder, cleanup, err := startJournal(workspaceRoot, journal.PhaseDecompose, taskPath, decomposeNoJournal)
	if err != nil {
		return err
	}
	defer cleanup()

	driver := decompose.New(orc, decompose.Options{
		NodeBudget: cfg.Decompose.NodeBudget,
		Journal:    recorder,
		Log:        logger,
		Progress:   progressPrinter(),
	})

	runErr := driver.Run(cmd.Context(), taskPath)
	finishJournal(recorder, runErr)
	if runErr != nil {
		return runErr
	}

	color.New(color.FgGreen).Printf("\nDecomposition complete: %d oracle call(s)\n", driver.Calls())
	fmt.Println("Review and edit the generated task files, then run:")
	fmt.Printf("  agenttree solve %s\n", args[0])
	return nil
}

// progressPrinter returns the per-node progress callback shared by both
// drivers.
func progressPrinter() func(format string, args ...interface{}) {
	cyan := color.New(color.FgCyan)
	return func(format string, args ...interface{}) {
		cyan.Printf(format+"\n", args...)
	}
}

// startJournal opens the workspace journal and starts a run record. A
// disabled journal yields a nil recorder, which the drivers treat as a
// no-op.
func startJournal(workspaceRoot, phase, taskPath string, disabled bool) (*journal.Recorder, func(), error) {
	if disabled {
		return nil, func() {}, nil
	}

	db, err := journal.OpenWorkspace(workspaceRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal: %w", err)
	}

	recorder, err := db.StartRun(phase, taskPath)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return recorder, func() { db.Close() }, nil
}

// finishJournal closes out the run record.
func finishJournal(recorder *journal.Recorder, runErr error) {
	status := "completed"
	if runErr != nil {
		status = "failed"
	}
	if err := recorder.Finish(status); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
