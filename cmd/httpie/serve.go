package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/httpie"
	"github.com/jpalmerr/httpie/config"
)

const (
	// addressEnv overrides the bind address when no flag is given.
	addressEnv = "HTTPIE_ADDRESS"

	defaultPublicDir = "www"
)

// serveCmd starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	Long: `Start the httpie server.

The bind address is taken from, in order: --address, the HTTPIE_ADDRESS
environment variable, the config file, and finally 127.0.0.1:8080.
The public directory is taken from --dir, then the config file, and
defaults to ./www. Unless the config file lists its own routes, /hello
echoes the request as JSON and /cwd reports the working directory.

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  httpie serve
  httpie serve -c /etc/httpie/httpie.yaml
  HTTPIE_ADDRESS=0.0.0.0:80 httpie serve -d /srv/www -w 16`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file")
	cmd.Flags().StringP("address", "a", "", "address to bind (overrides "+addressEnv+" and config)")
	cmd.Flags().StringP("dir", "d", "", "public directory for static files (default \"www\")")
	cmd.Flags().IntP("workers", "w", 0, "number of worker goroutines (default from config, else 4)")
}

// resolveAddress applies flag > environment > config file > default.
func resolveAddress(flag, env, file string) string {
	switch {
	case flag != "":
		return flag
	case env != "":
		return env
	case file != "":
		return file
	default:
		return httpie.DefaultAddress
	}
}

// resolvePublicDir applies flag > config file > default.
func resolvePublicDir(flag, file string) string {
	switch {
	case flag != "":
		return flag
	case file != "":
		return file
	default:
		return defaultPublicDir
	}
}

// loadConfig reads the config file, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(nil)
	}
	return config.Load(path)
}

// buildServer assembles server options from the config file and flags.
func buildServer(cmd *cobra.Command) (*httpie.Server, *slog.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build options: %w", err)
	}

	addressFlag, _ := cmd.Flags().GetString("address")
	dirFlag, _ := cmd.Flags().GetString("dir")
	workers, _ := cmd.Flags().GetInt("workers")

	opts = append(opts,
		httpie.WithAddress(resolveAddress(addressFlag, os.Getenv(addressEnv), cfg.Address)),
		httpie.WithPublicDir(resolvePublicDir(dirFlag, cfg.PublicDir)),
		httpie.WithLogger(logger),
	)
	if cmd.Flags().Changed("workers") {
		opts = append(opts, httpie.WithWorkers(workers))
	}

	srv, err := httpie.New(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, logger, err := buildServer(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(srv.PublicDir()); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("public directory does not exist, static requests will 404",
			"public_dir", srv.PublicDir(),
		)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutdown complete",
		"uptime", time.Since(started).Round(time.Millisecond).String(),
	)
	return nil
}
