// Package lifecycle sequences graceful shutdown. Components register a stop
// hook as they come up; on termination the hooks run in reverse registration
// order, so anything depending on the datastores stops before they do.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc stops one component. The context carries the shutdown deadline.
type StopFunc func(ctx context.Context) error

type entry struct {
	name string
	stop StopFunc
}

// Manager collects stop hooks and drives them on shutdown.
type Manager struct {
	deadline time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	entries []entry
}

func New(deadline time.Duration, logger *zap.Logger) *Manager {
	if deadline <= 0 {
		deadline = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		deadline: deadline,
		logger:   logger,
	}
}

// Register adds a named stop hook. Registration order matters: hooks run
// last-registered-first.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry{name: name, stop: stop})
}

// Shutdown runs every registered hook in reverse order under the configured
// deadline. A failing hook does not stop the sequence; all failures are
// reported together, tagged with the component name.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.deadline)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var failures error
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if err := e.stop(ctx); err != nil {
			m.logger.Error("stop hook failed", zap.String("component", e.name), zap.Error(err))
			failures = errors.Join(failures, fmt.Errorf("%s: %w", e.name, err))
			continue
		}
		m.logger.Info("component stopped", zap.String("component", e.name))
	}
	return failures
}

// Listen waits for SIGTERM or SIGINT in the background and fires the cancel
// function once, letting the main goroutine fall through to Shutdown.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("termination signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
