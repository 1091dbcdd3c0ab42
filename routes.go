package httpie

import (
	"fmt"
	"sort"
)

// Handler produces the response for a request routed to it.
//
// Handlers may do their own I/O. They run on a pool worker; a panicking
// handler is recovered by the server and answered with [ServerError].
type Handler func(req Request) Response

// Routes is an immutable table from exact request paths to handlers.
//
// The zero value is an empty table. Routes values are safe to share between
// goroutines without locking because nothing can change after [NewRoutes]
// returns.
type Routes struct {
	handlers map[string]Handler
}

// NewRoutes builds a route table from m. The map is copied, so later
// changes to m do not affect the table.
//
// Returns an error if any handler is nil.
func NewRoutes(m map[string]Handler) (Routes, error) {
	handlers := make(map[string]Handler, len(m))
	for path, h := range m {
		if h == nil {
			return Routes{}, fmt.Errorf("route %q: handler is nil", path)
		}
		handlers[path] = h
	}
	return Routes{handlers: handlers}, nil
}

// Lookup returns the handler registered for exactly path.
func (r Routes) Lookup(path string) (Handler, bool) {
	h, ok := r.handlers[path]
	return h, ok
}

// Len returns the number of routes.
func (r Routes) Len() int {
	return len(r.handlers)
}

// Paths returns the registered paths in sorted order.
func (r Routes) Paths() []string {
	paths := make([]string, 0, len(r.handlers))
	for p := range r.handlers {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
