package httpie

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// OverflowPolicy decides what happens to a new connection when the job
// queue is full.
type OverflowPolicy int

const (
	// OverflowBlock makes the acceptor wait for a free queue slot.
	OverflowBlock OverflowPolicy = iota

	// OverflowShed answers the connection with 503 Service Unavailable and
	// closes it without queueing a job.
	OverflowShed
)

// String returns the config name of the policy.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowShed:
		return "shed"
	default:
		return "block"
	}
}

// ParseOverflowPolicy maps "block" or "shed" to an [OverflowPolicy].
// An empty string selects [OverflowBlock].
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return OverflowBlock, nil
	case "shed":
		return OverflowShed, nil
	default:
		return OverflowBlock, fmt.Errorf("unknown overflow policy %q (expected 'block' or 'shed')", s)
	}
}

// srvConfig holds mutable state during Server construction.
type srvConfig struct {
	address         string
	publicDir       string
	workers         int
	queueSize       int
	overflow        OverflowPolicy
	routes          map[string]Handler
	readBufferSize  int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	staticCacheTTL  time.Duration
	metricsPath     string
	logger          *slog.Logger
}

// Option is a function that configures a [Server] during construction.
//
// Options return an error if validation fails; [New] stops at the first
// failing option.
type Option func(*srvConfig) error

// WithAddress sets the TCP address to bind, e.g. "127.0.0.1:8080".
// Defaults to 127.0.0.1:8080.
func WithAddress(addr string) Option {
	return func(cfg *srvConfig) error {
		if strings.TrimSpace(addr) == "" {
			return errors.New("address cannot be empty")
		}
		cfg.address = addr
		return nil
	}
}

// WithPublicDir enables static serving from dir for paths no route matches.
//
// An empty dir disables static serving, which is also the default. Paths
// are resolved relative to dir with one leading slash stripped, and "/"
// maps to index.html. Paths with ".." segments are answered with 404.
func WithPublicDir(dir string) Option {
	return func(cfg *srvConfig) error {
		cfg.publicDir = dir
		return nil
	}
}

// WithWorkers sets the number of worker goroutines. Defaults to 4.
//
// Returns an error if n is less than 1.
func WithWorkers(n int) Option {
	return func(cfg *srvConfig) error {
		if n < 1 {
			return errors.New("workers must be at least 1")
		}
		cfg.workers = n
		return nil
	}
}

// WithQueueSize sets how many accepted connections may wait for a worker.
// Defaults to 64.
//
// Returns an error if n is less than 1.
func WithQueueSize(n int) Option {
	return func(cfg *srvConfig) error {
		if n < 1 {
			return errors.New("queue size must be at least 1")
		}
		cfg.queueSize = n
		return nil
	}
}

// WithOverflowPolicy sets the behavior when the job queue is full.
// Defaults to [OverflowBlock].
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(cfg *srvConfig) error {
		if p != OverflowBlock && p != OverflowShed {
			return fmt.Errorf("unknown overflow policy %d", int(p))
		}
		cfg.overflow = p
		return nil
	}
}

// WithRoute registers h for requests whose path is exactly path.
//
// Routes take precedence over static files. Registering the same path twice
// is an error.
//
// Example:
//
//	srv, err := httpie.New(
//	    httpie.WithRoute("/hello", handlers.Echo),
//	    httpie.WithRoute("/cwd", handlers.Cwd),
//	)
func WithRoute(path string, h Handler) Option {
	return func(cfg *srvConfig) error {
		if h == nil {
			return fmt.Errorf("route %q: handler cannot be nil", path)
		}
		if _, exists := cfg.routes[path]; exists {
			return fmt.Errorf("duplicate route: %q", path)
		}
		cfg.routes[path] = h
		return nil
	}
}

// WithRoutes registers several routes at once. Equivalent to calling
// [WithRoute] for each entry.
func WithRoutes(routes map[string]Handler) Option {
	return func(cfg *srvConfig) error {
		for path, h := range routes {
			if err := WithRoute(path, h)(cfg); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithReadBufferSize sets the size of the single read that must hold the
// request line and headers. Defaults to 1024 bytes.
//
// Returns an error if n is less than 64.
func WithReadBufferSize(n int) Option {
	return func(cfg *srvConfig) error {
		if n < 64 {
			return errors.New("read buffer size must be at least 64 bytes")
		}
		cfg.readBufferSize = n
		return nil
	}
}

// WithReadTimeout bounds how long a worker waits for request bytes.
// Zero, the default, waits indefinitely.
func WithReadTimeout(d time.Duration) Option {
	return func(cfg *srvConfig) error {
		if d < 0 {
			return errors.New("read timeout cannot be negative")
		}
		cfg.readTimeout = d
		return nil
	}
}

// WithWriteTimeout bounds how long a worker waits to write a response.
// Zero, the default, waits indefinitely.
func WithWriteTimeout(d time.Duration) Option {
	return func(cfg *srvConfig) error {
		if d < 0 {
			return errors.New("write timeout cannot be negative")
		}
		cfg.writeTimeout = d
		return nil
	}
}

// WithShutdownTimeout bounds how long [Server.Serve] waits for queued and
// in-flight jobs after the context is cancelled. Defaults to 10 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg *srvConfig) error {
		if d <= 0 {
			return errors.New("shutdown timeout must be positive")
		}
		cfg.shutdownTimeout = d
		return nil
	}
}

// WithStaticCache keeps static file contents in memory for ttl. Files
// changed on disk are served stale until their entry expires. Zero disables
// the cache, which is the default.
func WithStaticCache(ttl time.Duration) Option {
	return func(cfg *srvConfig) error {
		if ttl < 0 {
			return errors.New("static cache ttl cannot be negative")
		}
		cfg.staticCacheTTL = ttl
		return nil
	}
}

// WithMetricsPath registers a route at path that serves the server's
// Prometheus metrics in text format. Metrics are collected either way; the
// route is off by default.
func WithMetricsPath(path string) Option {
	return func(cfg *srvConfig) error {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("metrics path must start with '/', got %q", path)
		}
		cfg.metricsPath = path
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *srvConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
