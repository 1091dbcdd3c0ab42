package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jpalmerr/httpie"
	"github.com/jpalmerr/httpie/handlers"
)

// BuildOptions converts parsed configuration into server options.
//
// Address and PublicDir are not emitted: they take part in the caller's
// precedence rules (flags, environment) and are applied once there.
func BuildOptions(cfg *Config) ([]httpie.Option, error) {
	overflow, err := httpie.ParseOverflowPolicy(cfg.Overflow)
	if err != nil {
		return nil, err
	}

	opts := []httpie.Option{
		httpie.WithWorkers(cfg.Workers),
		httpie.WithQueueSize(cfg.QueueSize),
		httpie.WithOverflowPolicy(overflow),
		httpie.WithReadBufferSize(cfg.ReadBufferSize),
		httpie.WithReadTimeout(cfg.ReadTimeout.Duration()),
		httpie.WithWriteTimeout(cfg.WriteTimeout.Duration()),
		httpie.WithShutdownTimeout(cfg.ShutdownTimeout.Duration()),
		httpie.WithStaticCache(cfg.StaticCacheTTL.Duration()),
	}

	if cfg.MetricsPath != "" {
		opts = append(opts, httpie.WithMetricsPath(cfg.MetricsPath))
	}

	for _, r := range cfg.Routes {
		h, ok := handlers.Builtin[r.Handler]
		if !ok {
			// validation should catch this
			return nil, fmt.Errorf("route %s: unknown handler %q", r.Path, r.Handler)
		}
		opts = append(opts, httpie.WithRoute(r.Path, h))
	}

	return opts, nil
}

// NewLogger builds the logger described by lc, writing to w.
func NewLogger(w io.Writer, lc LogConfig) (*slog.Logger, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch lc.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log.format must be text or json, got %q", lc.Format)
	}
}
