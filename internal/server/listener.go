package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

const (
	// acceptBackoffMin and acceptBackoffMax bound the sleep after a
	// temporary accept error.
	acceptBackoffMin = 5 * time.Millisecond
	acceptBackoffMax = time.Second
)

// Listen binds a TCP listener on addr.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind to %s: %w", addr, err)
	}
	return ln, nil
}

// Listener runs the accept loop over a bound [net.Listener].
type Listener struct {
	ln     net.Listener
	logger *slog.Logger

	closeOnce sync.Once
}

// NewListener wraps a bound listener. logger may be nil.
func NewListener(ln net.Listener, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{ln: ln, logger: logger}
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve accepts connections and passes each one to handle until ctx is
// cancelled. handle runs on the accept goroutine and must not block for
// long; it owns the connection from then on.
//
// Serve returns nil after a context-driven shutdown and a wrapped error if
// accepting fails permanently. The socket is closed in both cases.
func (l *Listener) Serve(ctx context.Context, handle func(net.Conn)) error {
	stop := make(chan struct{})
	defer close(stop)

	// close the socket on cancellation to unblock Accept
	go func() {
		select {
		case <-ctx.Done():
			l.close()
		case <-stop:
		}
	}()
	defer l.close()

	var backoff time.Duration
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				backoff = nextBackoff(backoff)
				l.logger.Warn("accept error, retrying",
					"error", err,
					"backoff", backoff.String(),
				)
				time.Sleep(backoff)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}

		backoff = 0
		handle(conn)
	}
}

func (l *Listener) close() {
	l.closeOnce.Do(func() {
		if err := l.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			l.logger.Error("listener close error", "error", err)
		}
	})
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return acceptBackoffMin
	}
	d *= 2
	if d > acceptBackoffMax {
		d = acceptBackoffMax
	}
	return d
}
