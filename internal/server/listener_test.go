package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListen_BindError(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	// binding the same address twice must fail
	_, err = Listen(ln.Addr().String())
	if err == nil {
		t.Fatal("Listen() on a used address expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to bind") {
		t.Errorf("Listen() error = %v, want error containing 'failed to bind'", err)
	}
}

func TestListener_ServeHandsOffConnections(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	l := NewListener(ln, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	accepted := 0
	got := make(chan struct{}, 3)

	done := make(chan error, 1)
	go func() {
		done <- l.Serve(ctx, func(c net.Conn) {
			mu.Lock()
			accepted++
			mu.Unlock()
			_ = c.Close()
			got <- struct{}{}
		})
	}()

	for i := 0; i < 3; i++ {
		c, err := net.Dial("tcp", l.Addr().String())
		if err != nil {
			t.Fatalf("Dial() error = %v", err)
		}
		_ = c.Close()
	}

	for i := 0; i < 3; i++ {
		select {
		case <-got:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for accepted connection")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after context cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	if accepted != 3 {
		t.Errorf("accepted = %d, want 3", accepted)
	}
}

func TestListener_ServeClosesSocketOnCancel(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	l := NewListener(ln, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Serve(ctx, func(c net.Conn) { _ = c.Close() }); err != nil {
		t.Errorf("Serve() error = %v, want nil", err)
	}

	if _, err := ln.Accept(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("Accept() after Serve error = %v, want %v", err, net.ErrClosed)
	}
}

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, acceptBackoffMin},
		{acceptBackoffMin, 2 * acceptBackoffMin},
		{800 * time.Millisecond, acceptBackoffMax},
		{acceptBackoffMax, acceptBackoffMax},
	}
	for _, tt := range tests {
		if got := nextBackoff(tt.in); got != tt.want {
			t.Errorf("nextBackoff(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
