// Package server provides the TCP accept loop for httpie.
//
// This package is internal to httpie and handles only socket concerns:
//
//   - Binding: [Listen] binds the address synchronously so bind errors
//     surface before anything else starts
//   - Accepting: [Listener.Serve] hands every accepted connection to a
//     callback and retries temporary accept errors with backoff
//   - Shutdown: cancelling the context closes the socket and ends Serve
//
// Request decoding, dispatch and the worker pool live in the httpie package.
package server
