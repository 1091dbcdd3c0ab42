package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/httpie/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an httpie configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  httpie validate -c httpie.yaml
  httpie validate --config /etc/httpie/httpie.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	address := cfg.Address
	if address == "" {
		address = "(not set)"
	}
	publicDir := cfg.PublicDir
	if publicDir == "" {
		publicDir = "(not set)"
	}

	routes := make([]string, 0, len(cfg.Routes))
	for _, r := range cfg.Routes {
		routes = append(routes, r.Path+" -> "+r.Handler)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Address:    %s\n", address)
	fmt.Fprintf(out, "  Public dir: %s\n", publicDir)
	fmt.Fprintf(out, "  Workers:    %d (queue %d, overflow %s)\n", cfg.Workers, cfg.QueueSize, cfg.Overflow)
	fmt.Fprintf(out, "  Routes:     %d\n", len(cfg.Routes))
	for _, r := range routes {
		fmt.Fprintf(out, "    %s\n", r)
	}
	if cfg.MetricsPath != "" {
		fmt.Fprintf(out, "  Metrics:    %s\n", cfg.MetricsPath)
	}

	return nil
}
