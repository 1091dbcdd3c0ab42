package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/jpalmerr/httpie"
	"github.com/jpalmerr/httpie/handlers"
	"github.com/jpalmerr/httpie/proto"
)

// uptime is a custom handler: any func(httpie.Request) httpie.Response works.
func uptime(started time.Time) httpie.Handler {
	return func(req httpie.Request) httpie.Response {
		body := fmt.Sprintf("up %s on %s/%s\n",
			time.Since(started).Round(time.Second), runtime.GOOS, runtime.GOARCH)
		return httpie.TextResponse(proto.StatusOK, proto.TextPlain, body)
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// serve the www directory next to this file
	_, file, _, _ := runtime.Caller(0)
	publicDir := filepath.Join(filepath.Dir(file), "www")

	srv, err := httpie.New(
		httpie.WithAddress("127.0.0.1:8080"),
		httpie.WithPublicDir(publicDir),
		httpie.WithWorkers(4),
		httpie.WithOverflowPolicy(httpie.OverflowShed),
		httpie.WithReadTimeout(5*time.Second),
		httpie.WithStaticCache(30*time.Second),
		httpie.WithMetricsPath("/metrics"),
		httpie.WithRoutes(map[string]httpie.Handler{
			"/hello":  handlers.Echo,
			"/cwd":    handlers.Cwd,
			"/uptime": uptime(time.Now()),
		}),
		httpie.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  httpie demo")
	fmt.Println()
	fmt.Println("  Static site:  http://127.0.0.1:8080/")
	fmt.Println("  Echo:         http://127.0.0.1:8080/hello?name=gopher")
	fmt.Println("  Working dir:  http://127.0.0.1:8080/cwd")
	fmt.Println("  Uptime:       http://127.0.0.1:8080/uptime")
	fmt.Println("  Metrics:      http://127.0.0.1:8080/metrics")
	fmt.Println()
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		slog.Error("httpie error", "error", err)
		os.Exit(1)
	}
}
