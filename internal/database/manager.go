// Package database owns the process-wide database handle.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrConnect wraps every failed connection attempt.
	ErrConnect = errors.New("database connection failed")
	// errDisconnected fails an attempt that completed after Disconnect.
	errDisconnected = errors.New("disconnected while connecting")
)

const (
	connectKey         = "connect"
	defaultDialTimeout = 5 * time.Second
	maxPingTimeout     = 2 * time.Second
)

// Conn is a live handle to a data store.
type Conn interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Dialer opens a new handle. The context carries the attempt deadline.
type Dialer[C Conn] func(ctx context.Context) (C, error)

// Manager memoizes a single handle produced by a Dialer. Concurrent callers of
// Connect share one in-flight attempt; a failed attempt is not cached.
type Manager[C Conn] struct {
	logger  *slog.Logger
	dial    Dialer[C]
	timeout time.Duration

	group singleflight.Group

	mu        sync.RWMutex
	conn      C
	connected bool
	// generation advances on every Disconnect; an attempt started in an older
	// generation must not cache its handle.
	generation uint64
}

// NewManager returns a Manager that dials with dial, bounding each attempt by timeout.
func NewManager[C Conn](logger *slog.Logger, dial func(ctx context.Context) (C, error), timeout time.Duration) *Manager[C] {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return &Manager[C]{
		logger:  logger,
		dial:    dial,
		timeout: timeout,
	}
}

// Connect returns the cached handle, or joins or starts the connection attempt.
// The attempt outlives ctx; ctx only bounds how long this caller waits for it.
func (m *Manager[C]) Connect(ctx context.Context) (C, error) {
	if c, ok := m.cached(); ok {
		m.logger.DebugContext(ctx, "using existing database connection")
		return c, nil
	}

	ch := m.group.DoChan(connectKey, func() (any, error) {
		// A previous attempt may have completed between the cache check and DoChan.
		if c, ok := m.cached(); ok {
			return c, nil
		}
		m.mu.RLock()
		gen := m.generation
		m.mu.RUnlock()

		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
		defer cancel()

		m.logger.InfoContext(ctx, "creating new database connection")
		c, err := m.dial(dialCtx)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to connect to database", "err", err)
			return nil, err
		}

		m.mu.Lock()
		if m.generation != gen {
			m.mu.Unlock()
			if err := c.Close(dialCtx); err != nil {
				m.logger.WarnContext(ctx, "failed to close stale database connection", "err", err)
			}
			return nil, errDisconnected
		}
		m.conn = c
		m.connected = true
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "successfully connected to database")
		return c, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero C
			return zero, fmt.Errorf("%w: %w", ErrConnect, res.Err)
		}
		return res.Val.(C), nil
	case <-ctx.Done():
		var zero C
		return zero, ctx.Err()
	}
}

// Disconnect closes the cached handle if any. Calling it again is a no-op.
func (m *Manager[C]) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	m.generation++
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	c := m.conn
	var zero C
	m.conn = zero
	m.connected = false
	m.mu.Unlock()

	if err := c.Close(ctx); err != nil {
		return fmt.Errorf("close database connection: %w", err)
	}
	m.logger.InfoContext(ctx, "database connection closed")
	return nil
}

// IsConnected reports whether a handle is cached and answers a ping.
func (m *Manager[C]) IsConnected(ctx context.Context) bool {
	c, ok := m.cached()
	if !ok {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, min(m.timeout, maxPingTimeout))
	defer cancel()
	return c.Ping(ctx) == nil
}

func (m *Manager[C]) cached() (C, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conn, m.connected
}
