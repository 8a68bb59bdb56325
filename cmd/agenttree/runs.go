package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmhart/agenttree/internal/journal"
)

var (
	runsLimit     int
	runsWorkspace string
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "Show recorded decompose and solve runs",
	Long: `List recent runs from the workspace journal, or show the oracle
invocations of a single run when a run id is given. The journal is
history only; re-running never consults it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.Flags().StringVar(&runsWorkspace, "workspace", ".", "Workspace root holding the journal")
}

func runRuns(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(runsWorkspace)
	if err != nil {
		return fmt.Errorf("resolving workspace: %w", err)
	}

	db, err := journal.OpenWorkspace(root)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		return showInvocations(db, args[0])
	}
	return listRuns(db)
}

func listRuns(db *journal.DB) error {
	runs, err := db.Runs(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	bold := color.New(color.Bold)
	for _, r := range runs {
		bold.Printf("%s  %s\n", r.ID, r.Phase)
		fmt.Printf("  root:    %s\n", r.Root)
		fmt.Printf("  started: %s\n", r.StartedAt.Local().Format(time.RFC3339))
		if r.FinishedAt != nil {
			fmt.Printf("  took:    %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
		}
		statusColor(r.Status).Printf("  status:  %s\n", r.Status)
		fmt.Println()
	}
	return nil
}

func showInvocations(db *journal.DB, runID string) error {
	invocations, err := db.Invocations(runID)
	if err != nil {
		return err
	}
	if len(invocations) == 0 {
		fmt.Printf("No invocations recorded for run %s.\n", runID)
		return nil
	}

	for _, inv := range invocations {
		statusColor(inv.Outcome).Printf("%3d. [%s] %s (%s)\n",
			inv.Seq, inv.Outcome, inv.TaskPath, inv.Duration.Round(time.Millisecond))
		if inv.Error != "" {
			fmt.Printf("     %s\n", inv.Error)
		}
	}
	return nil
}

func statusColor(status string) *color.Color {
	switch status {
	case "completed", journal.OutcomeOK:
		return color.New(color.FgGreen)
	case "running":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
