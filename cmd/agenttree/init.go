package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmhart/agenttree/internal/config"
)

var (
	initForce           bool
	initSkipOracleCheck bool
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a task workspace",
	Long: `Initialize a directory for use with agenttree.

This command sets up the workspace:
  - Verifies the oracle CLI is available
  - Creates the .agenttree directory for logs and the run journal
  - Creates a .agenttree.yaml template with the current defaults

The directory argument is optional and defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if already set up")
	initCmd.Flags().BoolVar(&initSkipOracleCheck, "skip-oracle-check", false, "Skip oracle CLI availability check")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	fmt.Printf("Initializing agenttree in %s...\n\n", absPath)

	workDir := filepath.Join(absPath, ".agenttree")
	if _, err := os.Stat(workDir); err == nil && !initForce {
		fmt.Println("Directory already initialized. Use --force to reinitialize.")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !initSkipOracleCheck && cfg.Oracle.Backend == "cli" {
		if err := CheckClaudeCLI(cfg.Oracle.Command); err != nil {
			printStatus("✗", "Oracle CLI not found", color.FgRed)
			return err
		}
		printStatus("✓", "Oracle CLI found", color.FgGreen)
	}

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		printStatus("⚠", "ANTHROPIC_API_KEY not set (only needed for the api backend)", color.FgYellow)
	} else {
		printStatus("✓", "ANTHROPIC_API_KEY is set", color.FgGreen)
	}

	if err := os.MkdirAll(filepath.Join(workDir, "logs"), 0755); err != nil {
		return fmt.Errorf("creating .agenttree directory: %w", err)
	}
	printStatus("✓", "Created .agenttree directory structure", color.FgGreen)

	created, err := createProjectConfig(absPath)
	if err != nil {
		return fmt.Errorf("creating project config: %w", err)
	}
	if created {
		printStatus("✓", "Created "+config.ProjectConfigName+" template", color.FgGreen)
	} else {
		printStatus("✓", config.ProjectConfigName+" already present", color.FgGreen)
	}

	fmt.Printf("\n%s Workspace ready.\n\n", color.GreenString("✓"))
	fmt.Println("Next steps:")
	fmt.Println("  1. Write a root task file, e.g. task.md")
	fmt.Println("  2. agenttree decompose task.md")
	fmt.Println("  3. Review and edit the generated subtask files")
	fmt.Println("  4. agenttree solve task.md")
	return nil
}

// createProjectConfig writes a project override file seeded with the
// built-in defaults. An existing file is never overwritten.
func createProjectConfig(dir string) (bool, error) {
	configPath := filepath.Join(dir, config.ProjectConfigName)
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	defaults := config.Default()
	template := map[string]interface{}{
		"oracle": map[string]interface{}{
			"backend": defaults.Oracle.Backend,
			"command": defaults.Oracle.Command,
			"timeout": defaults.Oracle.Timeout.String(),
		},
		"decompose": map[string]interface{}{
			"node_budget": defaults.Decompose.NodeBudget,
		},
		"solve": map[string]interface{}{
			"max_depth": defaults.Solve.MaxDepth,
		},
	}

	data, err := yaml.Marshal(template)
	if err != nil {
		return false, fmt.Errorf("marshaling defaults: %w", err)
	}

	header := "# agenttree project configuration\n# Overrides defaults from ~/.config/agenttree/config.yaml\n\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// printStatus prints a status line with color.
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
