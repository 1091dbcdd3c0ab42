// Package config provides YAML configuration parsing for httpie.
//
// This package enables running httpie as a standalone binary with a
// configuration file, as an alternative to building a server in code.
//
// Example configuration:
//
//	address: ${HTTPIE_ADDRESS:-127.0.0.1:8080}
//	public_dir: www
//	workers: 8
//	overflow: shed
//	read_timeout: 5s
//	metrics_path: /metrics
//
//	routes:
//	  - path: /hello
//	    handler: echo
//	  - path: /cwd
//	    handler: cwd
//
//	log:
//	  level: debug
//	  format: json
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/httpie"
	"github.com/jpalmerr/httpie/handlers"
)

const (
	defaultWorkers         = 4
	defaultQueueSize       = 64
	defaultShutdownTimeout = 10 * time.Second
)

// Config is the root configuration structure for httpie.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Address is the TCP address to bind. Empty leaves the choice to the
	// caller (flag, HTTPIE_ADDRESS, then the library default).
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Address string `yaml:"address"`

	// PublicDir is the static file root. Supports environment variable
	// substitution.
	PublicDir string `yaml:"public_dir"`

	// Workers is the worker pool size. Defaults to 4.
	Workers int `yaml:"workers"`

	// QueueSize is the number of accepted connections that may wait for a
	// worker. Defaults to 64.
	QueueSize int `yaml:"queue_size"`

	// Overflow is "block" or "shed". Defaults to "block".
	Overflow string `yaml:"overflow"`

	// ReadBufferSize bounds the request line and headers. Defaults to 1024.
	ReadBufferSize int `yaml:"read_buffer_size"`

	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// StaticCacheTTL enables the in-memory static file cache when non-zero.
	StaticCacheTTL Duration `yaml:"static_cache_ttl"`

	// MetricsPath, when set, exposes Prometheus metrics on that path.
	MetricsPath string `yaml:"metrics_path"`

	// Routes maps exact request paths to built-in handlers. When the key is
	// absent, [DefaultRoutes] are used; an explicit empty list disables them.
	Routes []RouteConfig `yaml:"routes"`

	Log LogConfig `yaml:"log"`
}

// RouteConfig binds one path to a built-in handler.
//
// It supports two formats in YAML:
//
// Shorthand string:
//
//	routes:
//	  - /hello=echo
//
// Structured object:
//
//	routes:
//	  - path: /hello
//	    handler: echo
type RouteConfig struct {
	Path    string
	Handler string
}

// DefaultRoutes returns the routes served when a config names none:
// /hello answers with [handlers.Echo] and /cwd with [handlers.Cwd].
func DefaultRoutes() []RouteConfig {
	return []RouteConfig{
		{Path: "/hello", Handler: "echo"},
		{Path: "/cwd", Handler: "cwd"},
	}
}

// LogConfig selects the CLI log handler.
type LogConfig struct {
	// Level is debug, info, warn or error. Defaults to info.
	Level string `yaml:"level"`

	// Format is text or json. Defaults to text.
	Format string `yaml:"format"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for RouteConfig.
func (r *RouteConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		path, handler, found := strings.Cut(strings.TrimSpace(s), "=")
		if !found {
			return fmt.Errorf("route %q must be written as path=handler", s)
		}
		r.Path = strings.TrimSpace(path)
		r.Handler = strings.TrimSpace(handler)
		return nil
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Path    string `yaml:"path"`
			Handler string `yaml:"handler"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		r.Path = raw.Path
		r.Handler = raw.Handler
		return nil
	}

	return fmt.Errorf("route must be a string or object, got %v", node.Kind)
}

// SlogLevel maps Level to a [slog.Level].
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: unknown level %q", l.Level)
	}
	return level, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Address, PublicDir and MetricsPath.
// Defaults are applied for Workers (4), QueueSize (64), Overflow (block),
// ReadBufferSize (1024), ShutdownTimeout (10s), Routes and the log settings.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Overflow == "" {
		cfg.Overflow = httpie.OverflowBlock.String()
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = httpie.DefaultReadBufferSize
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(defaultShutdownTimeout)
	}
	if cfg.Routes == nil {
		cfg.Routes = DefaultRoutes()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	var err error
	if c.Address, err = expandEnvVars(c.Address); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if c.PublicDir, err = expandEnvVars(c.PublicDir); err != nil {
		return fmt.Errorf("public_dir: %w", err)
	}
	if c.MetricsPath, err = expandEnvVars(c.MetricsPath); err != nil {
		return fmt.Errorf("metrics_path: %w", err)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be at least 1, got %d", c.QueueSize)
	}
	if _, err := httpie.ParseOverflowPolicy(c.Overflow); err != nil {
		return fmt.Errorf("overflow: %w", err)
	}
	if c.ReadBufferSize < 64 {
		return fmt.Errorf("read_buffer_size must be at least 64, got %d", c.ReadBufferSize)
	}

	durations := []struct {
		name string
		d    Duration
	}{
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
		{"static_cache_ttl", c.StaticCacheTTL},
	}
	for _, d := range durations {
		if d.d.Duration() < 0 {
			return fmt.Errorf("%s cannot be negative, got %s", d.name, d.d.Duration())
		}
	}

	if c.MetricsPath != "" && !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("metrics_path must start with '/', got %q", c.MetricsPath)
	}

	seen := make(map[string]struct{}, len(c.Routes))
	for i, r := range c.Routes {
		if r.Path == "" {
			return fmt.Errorf("routes[%d]: path is required", i)
		}
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("routes[%d] (%s): path must start with '/'", i, r.Path)
		}
		if _, ok := handlers.Builtin[r.Handler]; !ok {
			return fmt.Errorf("routes[%d] (%s): unknown handler %q (expected one of %s)",
				i, r.Path, r.Handler, strings.Join(handlers.Names(), ", "))
		}
		if _, exists := seen[r.Path]; exists {
			return fmt.Errorf("routes[%d] (%s): duplicate path", i, r.Path)
		}
		if r.Path == c.MetricsPath {
			return fmt.Errorf("routes[%d] (%s): path is already used by metrics_path", i, r.Path)
		}
		seen[r.Path] = struct{}{}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}
