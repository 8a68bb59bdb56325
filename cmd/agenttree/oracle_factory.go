package main

import (
	"fmt"

	"github.com/jmhart/agenttree/internal/config"
	"github.com/jmhart/agenttree/internal/oracle"
)

// newOracle builds the oracle backend selected by configuration.
func newOracle(cfg *config.Config) (oracle.Oracle, error) {
	switch cfg.Oracle.Backend {
	case "", "cli":
		if err := CheckClaudeCLI(cfg.Oracle.Command); err != nil {
			return nil, err
		}
		cli := oracle.NewCLI(cfg.Oracle.Command, cfg.Oracle.Timeout)
		cli.Model = cfg.Oracle.Model
		return cli, nil

	case "api":
		client, err := oracle.NewClient(oracle.ClientConfig{
			Model:         cfg.Oracle.Model,
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.AWS.UseBedrock,
			AWSRegion:     cfg.AWS.Region,
			AWSProfile:    cfg.AWS.Profile,
		})
		if err != nil {
			return nil, fmt.Errorf("create API client: %w", err)
		}
		return oracle.NewAPI(client, cfg.Oracle.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown oracle backend %q (want cli or api)", cfg.Oracle.Backend)
	}
}
