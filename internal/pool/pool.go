package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// DefaultQueueSize is used when New is given a non-positive queue size.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned by [Pool.TrySubmit] when no queue slot is free.
	ErrQueueFull = errors.New("pool: job queue is full")

	// ErrClosed is returned by [Pool.Submit] when shutdown begins while the
	// job is still waiting for a queue slot. The job was not queued.
	ErrClosed = errors.New("pool: shut down while waiting for queue space")
)

// Job is a unit of work. It runs on exactly one worker, exactly once.
type Job func()

// Pool is a fixed set of workers consuming a bounded job queue.
//
// All methods are safe for concurrent use. Submitting after [Pool.Shutdown]
// has begun is a programmer error and panics.
type Pool struct {
	workers int
	jobs    chan Job
	logger  *slog.Logger
	wg      sync.WaitGroup

	// quit is closed when shutdown begins and wakes blocked submitters.
	quit chan struct{}

	// submitters counts Submit calls that may still send on jobs; jobs is
	// closed only after it drops to zero.
	submitters sync.WaitGroup

	// mu guards started and closed. It is never held across a blocking send.
	mu        sync.RWMutex
	started   bool
	closed    bool
	closeOnce sync.Once
}

// New creates a [Pool] with the given number of workers and queue capacity.
//
// Parameters:
//   - workers: number of worker goroutines, must be at least 1
//   - queueSize: job queue capacity; non-positive selects [DefaultQueueSize]
//   - logger: logger for panic reports
//
// Workers are not running until [Pool.Start] is called; jobs submitted
// before that wait in the queue.
func New(workers, queueSize int, logger *slog.Logger) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("pool: workers must be at least 1, got %d", workers)
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, queueSize),
		quit:    make(chan struct{}),
		logger:  logger,
	}, nil
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Start launches the workers. Start is idempotent, and a no-op after
// Shutdown.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(i)
	}
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(id, job)
	}
}

// run executes a job inside a recover boundary so one failing job cannot
// take its worker down.
func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job panic",
				"correlation_id", uuid.NewString(),
				"worker", id,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	job()
}

// Submit enqueues a job, blocking while the queue is full.
//
// It returns ctx.Err() if ctx is done, or [ErrClosed] if the pool starts
// shutting down, before a slot frees up; the job is then not queued. It
// panics if job is nil or the pool has already been shut down.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if job == nil {
		panic("pool: nil job")
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		panic("pool: submit after shutdown")
	}
	p.submitters.Add(1)
	p.mu.RUnlock()
	defer p.submitters.Done()

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrClosed
	}
}

// TrySubmit enqueues a job without blocking. It returns [ErrQueueFull] when
// the queue has no free slot. It panics if job is nil or the pool has been
// shut down.
func (p *Pool) TrySubmit(job Job) error {
	if job == nil {
		panic("pool: nil job")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		panic("pool: submit after shutdown")
	}
	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits until every queued and in-flight
// job has finished, or until ctx is done.
//
// Shutdown is idempotent. Calling it before Start still drains the queue by
// starting the workers first, so no accepted job is dropped. If ctx expires
// first, Shutdown returns ctx.Err() and the workers keep draining in the
// background.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	needStart := !p.started
	p.started = true
	p.closed = true
	p.mu.Unlock()

	if needStart {
		p.wg.Add(p.workers)
		for i := 0; i < p.workers; i++ {
			go p.work(i)
		}
	}

	p.closeOnce.Do(func() {
		close(p.quit)
		// blocked submitters return promptly once quit is closed
		p.submitters.Wait()
		close(p.jobs)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
