package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmhart/agenttree/internal/tree"
	"github.com/jmhart/agenttree/internal/tui"
)

var watchRoot string

var watchCmd = &cobra.Command{
	Use:   "watch [task.md]",
	Short: "Live task tree view",
	Long: `Watch the task tree and re-render it whenever files change. Useful
in a second terminal while decompose or solve is running.

Press q to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRoot, "root", "", "Rendering root (default: auto-discovered from the task, or the current directory)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	var current string
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving task path: %w", err)
		}
		current = abs
	}

	root := watchRoot
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

	model, err := tui.NewWatch(root, current)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
