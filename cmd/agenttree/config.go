package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmhart/agenttree/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify agenttree configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/agenttree/config.yaml
Project-specific overrides can be placed in .agenttree.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.Anthropic.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("aws.use_bedrock: %t\n", cfg.AWS.UseBedrock)
	fmt.Printf("aws.region: %s\n", cfg.AWS.Region)
	fmt.Printf("aws.profile: %s\n", cfg.AWS.Profile)
	fmt.Printf("oracle.backend: %s\n", cfg.Oracle.Backend)
	fmt.Printf("oracle.command: %s\n", cfg.Oracle.Command)
	fmt.Printf("oracle.model: %s\n", cfg.Oracle.Model)
	fmt.Printf("oracle.timeout: %s\n", cfg.Oracle.Timeout)
	fmt.Printf("decompose.node_budget: %d\n", cfg.Decompose.NodeBudget)
	fmt.Printf("solve.max_depth: %d\n", cfg.Solve.MaxDepth)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if cfg.Anthropic.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "aws.use_bedrock":
		return strconv.FormatBool(cfg.AWS.UseBedrock), nil
	case "aws.region":
		return cfg.AWS.Region, nil
	case "aws.profile":
		return cfg.AWS.Profile, nil
	case "oracle.backend":
		return cfg.Oracle.Backend, nil
	case "oracle.command":
		return cfg.Oracle.Command, nil
	case "oracle.model":
		return cfg.Oracle.Model, nil
	case "oracle.timeout":
		return cfg.Oracle.Timeout.String(), nil
	case "decompose.node_budget":
		return strconv.Itoa(cfg.Decompose.NodeBudget), nil
	case "solve.max_depth":
		return strconv.Itoa(cfg.Solve.MaxDepth), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "aws.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for aws.use_bedrock: %w", err)
		}
		cfg.AWS.UseBedrock = b
	case "aws.region":
		cfg.AWS.Region = value
	case "aws.profile":
		cfg.AWS.Profile = value
	case "oracle.backend":
		if value != "cli" && value != "api" {
			return fmt.Errorf("invalid oracle.backend %q (want cli or api)", value)
		}
		cfg.Oracle.Backend = value
	case "oracle.command":
		cfg.Oracle.Command = value
	case "oracle.model":
		cfg.Oracle.Model = value
	case "oracle.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for oracle.timeout: %w", err)
		}
		cfg.Oracle.Timeout = d
	case "decompose.node_budget":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for node_budget: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("node_budget must be at least 1")
		}
		cfg.Decompose.NodeBudget = n
	case "solve.max_depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_depth: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("max_depth must be at least 1")
		}
		cfg.Solve.MaxDepth = n
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
