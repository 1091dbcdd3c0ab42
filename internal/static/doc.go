// Package static resolves request paths to files under a public directory.
//
// This package is internal to httpie. A [Resolver] maps "/" to index.html,
// strips one leading slash from every other path, rejects names that could
// escape the root, and reads the file either as text or as raw bytes
// depending on the guessed content type. Results may be kept in an optional
// in-memory TTL cache.
package static
