// Package httpie is a small HTTP/1.1 server that answers exactly one
// request per connection.
//
// Each accepted connection becomes a job on a fixed pool of workers. The job
// reads the request from a single fixed-size buffer, routes it to a handler
// registered for the exact path or, failing that, to a file under an
// optional public directory, writes the response, and closes the
// connection.
//
// # Quick Start
//
//	srv, _ := httpie.New(
//	    httpie.WithAddress("127.0.0.1:8080"),
//	    httpie.WithPublicDir("www"),
//	    httpie.WithRoute("/hello", handlers.Echo),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	srv.Start(ctx) // blocks until the context is cancelled
//
// # Handlers
//
// A [Handler] is a plain function from [Request] to [Response]. The route
// table is built once by [New] and never changes, so handlers run on any
// worker without locking. A handler that panics is recovered, logged with a
// correlation ID, and answered with the built-in 500 page.
//
// # Static files
//
// When no route matches and a public directory is configured, "/" serves
// index.html and every other path is looked up relative to the directory.
// HTML, CSS, JavaScript and JSON are served as text; everything else as raw
// bytes. Missing files get the built-in 404 page, unreadable ones the 500
// page. Paths containing ".." segments are rejected with 404.
//
// # Protocol limits
//
// The server does not support keep-alive, chunked transfer encoding,
// pipelining, TLS, HTTP/2 or compression. The request line and headers must
// fit in the first read (1024 bytes by default, see [WithReadBufferSize]);
// longer header blocks are parsed in truncated form.
//
// # Architecture
//
// The engine is split across internal packages (under internal/):
//
//   - internal/pool: fixed-size worker pool with a bounded job queue
//   - internal/server: TCP accept loop
//   - internal/static: public directory lookups with an optional cache
//   - internal/metrics: Prometheus counters, served by [WithMetricsPath]
//
// The proto package holds the method, protocol, content type and status
// code tables; the handlers package holds two sample handlers.
package httpie
