package httpie

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jpalmerr/httpie/internal/metrics"
	"github.com/jpalmerr/httpie/internal/static"
	"github.com/jpalmerr/httpie/proto"
)

// Dispatcher turns a decoded [Request] into a [Response].
//
// Routing order, first match wins:
//  1. exact match in the route table: the handler's response, verbatim
//  2. a public directory, if configured: the static file, 404 or 500
//  3. the built-in 404 page
//
// A Dispatcher holds only read-only state and is safe for concurrent use.
type Dispatcher struct {
	routes Routes
	files  *static.Resolver
	logger *slog.Logger
}

// NewDispatcher creates a [Dispatcher].
//
// publicDir may be empty to disable static serving. A positive cacheTTL
// keeps static file contents in memory for that long.
func NewDispatcher(routes Routes, publicDir string, cacheTTL time.Duration, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{routes: routes, logger: logger}
	if publicDir != "" {
		d.files = static.NewResolver(publicDir, cacheTTL)
	}
	return d
}

// Dispatch returns the response for req. Handler panics are not recovered
// here; the server recovers them per job.
func (d *Dispatcher) Dispatch(req Request) Response {
	resp, _ := d.dispatch(req)
	return resp
}

// dispatch also reports which source produced the response.
func (d *Dispatcher) dispatch(req Request) (Response, string) {
	if h, ok := d.routes.Lookup(req.Path); ok {
		return h(req), metrics.SourceRoute
	}

	if d.files == nil {
		return NotFound(), metrics.SourceBuiltin
	}

	f, err := d.files.Resolve(req.Path)
	switch {
	case errors.Is(err, static.ErrNotFound):
		return NotFound(), metrics.SourceBuiltin
	case err != nil:
		d.logger.Error("failed to read static file",
			"path", req.Path,
			"root", d.files.Root(),
			"error", err,
		)
		return ServerError(), metrics.SourceBuiltin
	}

	return staticResponse(f), metrics.SourceStatic
}

// staticResponse converts a resolved file into a 200 response.
func staticResponse(f static.File) Response {
	body := Raw(f.Data)
	if f.Text {
		body = Text(string(f.Data))
	}
	return Response{
		Body:        body,
		Status:      proto.StatusOK,
		ContentType: f.ContentType,
	}
}
