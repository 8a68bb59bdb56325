// Package config handles configuration loading for agenttree. It
// supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ProjectConfigName is the project-level override file searched for in
// the current directory and its parents.
const ProjectConfigName = ".agenttree.yaml"

// Config holds all configuration for agenttree.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic" yaml:"anthropic"`
	AWS       AWSConfig       `mapstructure:"aws" yaml:"aws"`
	Oracle    OracleConfig    `mapstructure:"oracle" yaml:"oracle"`
	Decompose DecomposeConfig `mapstructure:"decompose" yaml:"decompose"`
	Solve     SolveConfig     `mapstructure:"solve" yaml:"solve"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// AWSConfig holds AWS Bedrock settings for the API oracle backend.
type AWSConfig struct {
	UseBedrock bool   `mapstructure:"use_bedrock" yaml:"use_bedrock"`
	Region     string `mapstructure:"region" yaml:"region"`
	Profile    string `mapstructure:"profile" yaml:"profile"`
}

// OracleConfig holds settings for the external solving process.
type OracleConfig struct {
	// Backend selects the oracle implementation: "cli" or "api".
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Command is the CLI executable used by the cli backend.
	Command string `mapstructure:"command" yaml:"command"`
	// Model is passed to either backend when non-empty.
	Model string `mapstructure:"model" yaml:"model"`
	// Timeout bounds each oracle invocation.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DecomposeConfig holds decomposition driver settings.
type DecomposeConfig struct {
	// NodeBudget is the maximum oracle invocations per decompose run.
	NodeBudget int `mapstructure:"node_budget" yaml:"node_budget"`
}

// SolveConfig holds solve driver settings.
type SolveConfig struct {
	// MaxDepth bounds recursion as a guard against cyclic dependents.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY)
// 2. Project config (.agenttree.yaml in current directory or parent)
// 3. User config (~/.config/agenttree/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("aws.use_bedrock", cfg.AWS.UseBedrock)
	v.Set("aws.region", cfg.AWS.Region)
	v.Set("aws.profile", cfg.AWS.Profile)
	v.Set("oracle.backend", cfg.Oracle.Backend)
	v.Set("oracle.command", cfg.Oracle.Command)
	v.Set("oracle.model", cfg.Oracle.Model)
	v.Set("oracle.timeout", cfg.Oracle.Timeout.String())
	v.Set("decompose.node_budget", cfg.Decompose.NodeBudget)
	v.Set("solve.max_depth", cfg.Solve.MaxDepth)

	return v.WriteConfig()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Oracle: OracleConfig{
			Backend: "cli",
			Command: "claude",
			Timeout: 10 * time.Minute,
		},
		Decompose: DecomposeConfig{NodeBudget: 5},
		Solve:     SolveConfig{MaxDepth: 64},
	}
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it
// exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")

	v.SetDefault("aws.use_bedrock", false)
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")

	v.SetDefault("oracle.backend", "cli")
	v.SetDefault("oracle.command", "claude")
	v.SetDefault("oracle.model", "")
	v.SetDefault("oracle.timeout", "10m")

	v.SetDefault("decompose.node_budget", 5)
	v.SetDefault("solve.max_depth", 64)
}

// getUserConfigDir returns the XDG config directory for agenttree.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "agenttree")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "agenttree")
	}
	return filepath.Join(home, ".config", "agenttree")
}

// findProjectConfig searches for .agenttree.yaml in the current
// directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
