package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// CheckClaudeCLI verifies that the oracle CLI is available in PATH.
// Returns an error with installation instructions if not found.
func CheckClaudeCLI(command string) error {
	if command == "" {
		command = "claude"
	}
	_, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("%s CLI not found in PATH\n\n"+
			"agenttree drives the Claude Code CLI to decompose and solve tasks.\n\n"+
			"Install it with:\n"+
			"  npm install -g @anthropic-ai/claude-code\n\n"+
			"Or switch to the API backend:\n"+
			"  agenttree config oracle.backend api", command)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "agenttree",
	Short: "Recursive task decomposition and solving",
	Long: `agenttree breaks a task written as a markdown file into a tree of
subtask files on disk, then solves that tree bottom-up, handing each
task to an external solver together with its place in the tree.

Typical workflow:
  1. Write a root task file (task.md) describing the problem
  2. agenttree decompose task.md   # builds task_plan.md + task_children/
  3. Edit the generated task files however you like
  4. agenttree solve task.md       # solves dependents and children first

The directory tree is the only state: every file can be inspected and
edited between the two phases.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(decomposeCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
