// Package main is the entry point for the httpie CLI.
//
// Usage:
//
//	httpie serve                        # Serve ./www on 127.0.0.1:8080
//	httpie serve -c httpie.yaml         # Serve with a config file
//	httpie serve -a 0.0.0.0:9000 -d pub # Override address and public dir
//	httpie validate -c httpie.yaml      # Validate configuration
//	httpie version                      # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:     "httpie",
	Short:   "A minimal one-request-per-connection HTTP server",
	Version: version,
	Long: `httpie is a minimal HTTP server.

Every connection carries exactly one request. The request is matched
against registered routes first and then against files in the public
directory. The connection is closed after the response.

Quick start:
  1. Put an index.html in ./www
  2. Run: httpie serve
  3. Open http://127.0.0.1:8080 in your browser

Example config:
  address: 127.0.0.1:8080
  public_dir: www
  workers: 4
  routes:
    - path: /hello
      handler: echo`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this httpie binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "httpie %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
