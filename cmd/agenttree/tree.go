package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmhart/agenttree/internal/tree"
)

var treeRoot string

var treeCmd = &cobra.Command{
	Use:   "tree [task.md]",
	Short: "Print the task tree",
	Long: `Render the task tree as box-drawing text, one line per task with
its one-line summary. With a task argument the corresponding node is
flagged in the output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeRoot, "root", "", "Rendering root (default: auto-discovered from the task, or the current directory)")
}

func runTree(cmd *cobra.Command, args []string) error {
	var current string
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving task path: %w", err)
		}
		current = abs
	}

	root := treeRoot
	switch {
	case root != "":
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving root: %w", err)
		}
		root = abs
	case current != "":
		root = tree.FindRoot(current)
	default:
		abs, err := filepath.Abs(".")
		if err != nil {
			return err
		}
		root = abs
	}

	rendered, err := tree.Render(root, current)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
