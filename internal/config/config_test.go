package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Oracle.Backend != "cli" {
		t.Errorf("Backend = %q, want cli", cfg.Oracle.Backend)
	}
	if cfg.Oracle.Command != "claude" {
		t.Errorf("Command = %q, want claude", cfg.Oracle.Command)
	}
	if cfg.Oracle.Timeout != 10*time.Minute {
		t.Errorf("Timeout = %s, want 10m", cfg.Oracle.Timeout)
	}
	if cfg.Decompose.NodeBudget != 5 {
		t.Errorf("NodeBudget = %d, want 5", cfg.Decompose.NodeBudget)
	}
	if cfg.Solve.MaxDepth != 64 {
		t.Errorf("MaxDepth = %d, want 64", cfg.Solve.MaxDepth)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
oracle:
  backend: api
  model: claude-sonnet-4-20250514
  timeout: 3m
decompose:
  node_budget: 12
solve:
  max_depth: 8
anthropic:
  api_key: test-key
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Oracle.Backend != "api" {
		t.Errorf("Backend = %q, want api", cfg.Oracle.Backend)
	}
	if cfg.Oracle.Timeout != 3*time.Minute {
		t.Errorf("Timeout = %s, want 3m", cfg.Oracle.Timeout)
	}
	if cfg.Decompose.NodeBudget != 12 {
		t.Errorf("NodeBudget = %d, want 12", cfg.Decompose.NodeBudget)
	}
	if cfg.Solve.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", cfg.Solve.MaxDepth)
	}
	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPathDefaultsFillGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("oracle:\n  model: x\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Oracle.Command != "claude" {
		t.Errorf("Command = %q, want default claude", cfg.Oracle.Command)
	}
	if cfg.Decompose.NodeBudget != 5 {
		t.Errorf("NodeBudget = %d, want default 5", cfg.Decompose.NodeBudget)
	}
}

func TestExpandEnvInAPIKey(t *testing.T) {
	t.Setenv("AGENTTREE_TEST_KEY", "expanded-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("anthropic:\n  api_key: ${AGENTTREE_TEST_KEY}\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Anthropic.APIKey != "expanded-key" {
		t.Errorf("APIKey = %q, want expanded-key", cfg.Anthropic.APIKey)
	}
}
