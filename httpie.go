package httpie

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/jpalmerr/httpie/internal/metrics"
	"github.com/jpalmerr/httpie/internal/pool"
	"github.com/jpalmerr/httpie/internal/server"
	"github.com/jpalmerr/httpie/proto"
)

const (
	DefaultAddress = "127.0.0.1:8080"

	defaultWorkers         = 4
	defaultQueueSize       = pool.DefaultQueueSize
	defaultShutdownTimeout = 10 * time.Second

	// shedWriteTimeout bounds the 503 write on the accept goroutine.
	shedWriteTimeout = 250 * time.Millisecond
)

// Server accepts connections and answers one request on each.
//
// Every accepted connection becomes a job on a fixed worker pool. A job
// decodes the request with [ReadRequest], produces a response with the
// [Dispatcher], writes it with [WriteResponse], and closes the connection.
// The route table and public directory are fixed at construction and shared
// read-only by all workers.
//
// The typical lifecycle is:
//
//	srv, err := httpie.New(
//	    httpie.WithAddress("127.0.0.1:8080"),
//	    httpie.WithPublicDir("www"),
//	    httpie.WithRoute("/hello", handlers.Echo),
//	)
//	if err != nil {
//	    slog.Error("failed to create server", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	srv.Start(ctx) // blocks until ctx is cancelled
//
// No timeouts apply unless configured: a client that never sends its
// request occupies a worker until it disconnects.
type Server struct {
	address         string
	publicDir       string
	workers         int
	queueSize       int
	overflow        OverflowPolicy
	readBufferSize  int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration

	routes     Routes
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a [Server] with the given options.
//
// Defaults:
//   - Address: 127.0.0.1:8080
//   - Workers: 4
//   - Queue size: 64, overflow policy block
//   - Read buffer: 1024 bytes
//   - No public directory, no routes
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Server, error) {
	cfg := &srvConfig{
		address:         DefaultAddress,
		workers:         defaultWorkers,
		queueSize:       defaultQueueSize,
		overflow:        OverflowBlock,
		routes:          make(map[string]Handler),
		readBufferSize:  DefaultReadBufferSize,
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	m := metrics.New()
	if cfg.metricsPath != "" {
		if err := WithRoute(cfg.metricsPath, metricsHandler(m, logger))(cfg); err != nil {
			return nil, fmt.Errorf("metrics route: %w", err)
		}
	}

	routes, err := NewRoutes(cfg.routes)
	if err != nil {
		return nil, err
	}

	return &Server{
		address:         cfg.address,
		publicDir:       cfg.publicDir,
		workers:         cfg.workers,
		queueSize:       cfg.queueSize,
		overflow:        cfg.overflow,
		readBufferSize:  cfg.readBufferSize,
		readTimeout:     cfg.readTimeout,
		writeTimeout:    cfg.writeTimeout,
		shutdownTimeout: cfg.shutdownTimeout,
		routes:          routes,
		dispatcher:      NewDispatcher(routes, cfg.publicDir, cfg.staticCacheTTL, logger),
		metrics:         m,
		logger:          logger,
	}, nil
}

// Address returns the configured bind address.
func (s *Server) Address() string {
	return s.address
}

// PublicDir returns the static root, or "" when static serving is off.
func (s *Server) PublicDir() string {
	return s.publicDir
}

// Workers returns the worker pool size.
func (s *Server) Workers() int {
	return s.workers
}

// Routes returns the route table.
func (s *Server) Routes() Routes {
	return s.routes
}

// Start binds the configured address and serves until ctx is cancelled.
//
// Start returns nil on graceful shutdown and an error if the address cannot
// be bound. On shutdown the listener is closed first, then queued and
// in-flight jobs are given the shutdown timeout to finish.
func (s *Server) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	ln, err := server.Listen(s.address)
	if err != nil {
		return fmt.Errorf("failed to start listener: %w", err)
	}

	s.logger.Info("httpie starting",
		"address", ln.Addr().String(),
		"public_dir", s.publicDir,
		"workers", s.workers,
		"routes", s.routes.Paths(),
	)

	err = s.Serve(ctx, ln)
	s.logger.Info("httpie stopped")
	return err
}

// Serve runs the server on an already bound listener until ctx is
// cancelled. Serve takes ownership of ln and closes it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	p, err := pool.New(s.workers, s.queueSize, s.logger)
	if err != nil {
		_ = ln.Close()
		return err
	}
	p.Start()

	l := server.NewListener(ln, s.logger)
	serveErr := l.Serve(ctx, func(conn net.Conn) {
		s.admit(ctx, p, conn)
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := p.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("worker pool shutdown timed out",
			"timeout", s.shutdownTimeout.String(),
			"error", err,
		)
	}

	return serveErr
}

// admit turns an accepted connection into a job. Under the block policy it
// waits for a queue slot until ctx is cancelled, then drops the connection.
func (s *Server) admit(ctx context.Context, p *pool.Pool, conn net.Conn) {
	job := func() { s.serveConn(conn) }

	if s.overflow == OverflowBlock {
		if err := p.Submit(ctx, job); err != nil {
			s.logger.Warn("connection dropped, server shutting down",
				"remote_addr", remoteAddr(conn),
				"error", err,
			)
			_ = conn.Close()
			return
		}
		s.metrics.JobQueued()
		return
	}

	if err := p.TrySubmit(job); err != nil {
		if errors.Is(err, pool.ErrQueueFull) {
			s.metrics.JobShed()
			s.shed(conn)
			return
		}
		s.logger.Error("failed to queue connection", "error", err)
		_ = conn.Close()
		return
	}
	s.metrics.JobQueued()
}

// shed answers a connection that could not be queued with 503 and closes
// it without reading the request.
func (s *Server) shed(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	_ = conn.SetWriteDeadline(time.Now().Add(shedWriteTimeout))
	if err := WriteResponse(conn, ServiceUnavailable()); err != nil {
		s.logger.Debug("failed to write shed response", "remote_addr", remoteAddr(conn), "error", err)
	}
	s.metrics.Response(proto.StatusServiceUnavailable.Code(), metrics.SourceBuiltin)
	s.logger.Warn("connection shed, job queue full", "remote_addr", remoteAddr(conn))
}

// serveConn is the body of one job: decode, dispatch, encode, close.
func (s *Server) serveConn(conn net.Conn) {
	done := s.metrics.JobStarted()
	defer done()
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug("connection close error", "remote_addr", remoteAddr(conn), "error", err)
		}
	}()

	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}

	req, err := ReadRequest(conn, s.readBufferSize, s.logger)
	if err != nil {
		s.logger.Warn("failed to read request", "remote_addr", remoteAddr(conn), "error", err)
		return
	}
	req.RemoteAddr = remoteAddr(conn)

	resp, source := s.dispatchSafe(req)

	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}

	w := bufio.NewWriter(conn)
	if err := WriteResponse(w, resp); err != nil {
		s.logger.Warn("failed to write response", "remote_addr", req.RemoteAddr, "path", req.Path, "error", err)
		return
	}
	if err := w.Flush(); err != nil {
		s.logger.Warn("failed to flush response", "remote_addr", req.RemoteAddr, "path", req.Path, "error", err)
		return
	}

	s.metrics.Response(resp.Status.Code(), source)
	s.logger.Debug("request served",
		"method", req.Method.String(),
		"path", req.Path,
		"status", resp.Status.Code(),
		"source", source,
		"remote_addr", req.RemoteAddr,
	)
}

// dispatchSafe runs the dispatcher with panic recovery.
// If a handler panics, it logs the stack trace with a correlation ID and
// answers with the built-in 500 page.
func (s *Server) dispatchSafe(req Request) (resp Response, source string) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.HandlerPanic()
			s.logger.Error("handler panic",
				"correlation_id", uuid.NewString(),
				"path", req.Path,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			resp, source = ServerError(), metrics.SourceBuiltin
		}
	}()
	return s.dispatcher.dispatch(req)
}

// metricsHandler serves the Prometheus text exposition of m.
func metricsHandler(m *metrics.Metrics, logger *slog.Logger) Handler {
	return func(Request) Response {
		body, err := m.Expose()
		if err != nil {
			logger.Error("failed to expose metrics", "error", err)
			return ServerError()
		}
		return TextResponse(proto.StatusOK, proto.TextPlain, string(body))
	}
}

func remoteAddr(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
