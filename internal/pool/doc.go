// Package pool provides the fixed-size worker pool that runs httpie jobs.
//
// This package is internal to httpie. A [Pool] owns N worker goroutines that
// consume a shared, bounded job queue. Each worker runs one job at a time to
// completion before pulling the next, and every submitted job runs exactly
// once.
//
// Admission has two modes:
//
//   - [Pool.Submit] blocks while the queue is full (backpressure), until its
//     context is done or shutdown begins
//   - [Pool.TrySubmit] returns [ErrQueueFull] instead of blocking (shedding)
//
// [Pool.Shutdown] stops admission, lets workers drain every queued and
// in-flight job, and waits for them to exit.
package pool
