// Package connection tracks whether the backend is reachable.
package connection

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"moms-kitchen/storefront/types"
)

// Status is the last known connectivity state.
type Status int

const (
	Connecting Status = iota
	Connected
	Disconnected
)

func (s Status) String() string {
	switch s {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "connecting"
	}
}

// HealthChecker probes the backend.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Monitor) { m.logger = logger.Named("connection") }
}

// Monitor records health check outcomes. A failure only surfaces as a
// banner once it has lasted the debounce period, so brief blips stay quiet.
type Monitor struct {
	checker  HealthChecker
	debounce time.Duration
	now      func() time.Time
	logger   *zap.Logger

	mu           sync.Mutex
	status       Status
	failingSince time.Time
	lastErr      error
}

// NewMonitor returns a Monitor in the Connecting state.
func NewMonitor(checker HealthChecker, debounce time.Duration, opts ...Option) *Monitor {
	m := &Monitor{
		checker:  checker,
		debounce: debounce,
		now:      time.Now,
		logger:   zap.NewNop(),
		status:   Connecting,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Check probes the backend once and records the result.
func (m *Monitor) Check(ctx context.Context) error {
	err := m.checker.CheckHealth(ctx)
	m.Observe(err)
	return err
}

// Observe records the outcome of any backend call. Errors unrelated to
// connectivity are ignored.
func (m *Monitor) Observe(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err == nil:
		if m.status != Connected {
			m.logger.Info("backend reachable")
		}
		m.status = Connected
		m.failingSince = time.Time{}
		m.lastErr = nil
	case errors.Is(err, types.ErrBackendUnavailable) || errors.Is(err, context.DeadlineExceeded):
		if m.failingSince.IsZero() {
			m.failingSince = m.now()
			m.logger.Warn("backend unreachable", zap.Error(err))
		}
		m.status = Disconnected
		m.lastErr = err
	}
}

// Retry marks the monitor Connecting and checks again.
func (m *Monitor) Retry(ctx context.Context) error {
	m.mu.Lock()
	m.status = Connecting
	m.mu.Unlock()

	return m.Check(ctx)
}

// Status returns the current state.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err returns the most recent connectivity error, if any.
func (m *Monitor) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ShowBanner reports whether the outage has lasted long enough to tell the user.
func (m *Monitor) ShowBanner() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failingSince.IsZero() {
		return false
	}
	return m.now().Sub(m.failingSince) >= m.debounce
}
