package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmhart/agenttree/internal/config"
	"github.com/jmhart/agenttree/internal/journal"
	"github.com/jmhart/agenttree/internal/runlog"
	"github.com/jmhart/agenttree/internal/solve"
	"github.com/jmhart/agenttree/internal/tree"
)

var (
	solveRoot      string
	solveMaxDepth  int
	solveTimeout   time.Duration
	solveBackend   string
	solveModel     string
	solveNoJournal bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <task.md>",
	Short: "Solve a decomposed task tree bottom-up",
	Long: `Solve a task tree produced by decompose.

Each task's dependents are solved first (in the order they appear in
the task file), then its children (lexicographically), then the task
itself. Every oracle invocation receives a rendered snapshot of the
whole tree with the current task flagged, and the task content is
re-read from disk at invocation time so edits made between runs are
picked up.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveRoot, "root", "", "Fixed rendering root for tree context (default: auto-discovered)")
	solveCmd.Flags().IntVar(&solveMaxDepth, "max-depth", 0, "Recursion ceiling guarding against cyclic dependents (default from config)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Per-invocation oracle timeout (default from config)")
	solveCmd.Flags().StringVar(&solveBackend, "backend", "", "Oracle backend: cli or api (default from config)")
	solveCmd.Flags().StringVar(&solveModel, "model", "", "Model passed to the oracle (default from config)")
	solveCmd.Flags().BoolVar(&solveNoJournal, "no-journal", false, "Skip recording the run in the journal")
}

func runSolve(cmd *cobra.Command, args []string) error {
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
	if solveMaxDepth > 0 {
		cfg.Solve.MaxDepth = solveMaxDepth
	}
	if solveTimeout > 0 {
		cfg.Oracle.Timeout = solveTimeout
	}
	if solveBackend != "" {
		cfg.Oracle.Backend = solveBackend
	}
	if solveModel != "" {
		cfg.Oracle.Model = solveModel
	}

	orc, err := newOracle(cfg)
	if err != nil {
		return err
	}

	root := solveRoot
	if root == "" {
		root = tree.FindRoot(taskPath)
	} else if root, err = filepath.Abs(root); err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	logger := runlog.ForWorkspace(root, "solve")
	defer logger.Close()

	recorder, cleanup, err := startJournal(root, journal.PhaseSolve, taskPath, solveNoJournal)
	if err != nil {
		return err
	}
	defer cleanup()

	driver := solve.New(orc, solve.Options{
		Root:     root,
		MaxDepth: cfg.Solve.MaxDepth,
		Journal:  recorder,
		Log:      logger,
		Progress: progressPrinter(),
	})

	runErr := driver.Run(cmd.Context(), taskPath)
	finishJournal(recorder, runErr)
	if runErr != nil {
		return runErr
	}

	color.New(color.FgGreen).Printf("\nSolved %d task(s)\n", driver.Solved())
	return nil
}
