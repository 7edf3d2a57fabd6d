// Package daemon holds background jobs that run next to the event loop.
package daemon

import (
	"context"
	"log/slog"
	"time"
)

// Target is the window manager operation the sweeper drives.
type Target interface {
	// Sweep drops clients whose windows no longer exist and reports how
	// many it dropped.
	Sweep(ctx context.Context) (int, error)
}

// SweeperConfig holds configuration for the sweeper.
type SweeperConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Sweeper periodically drops clients whose windows vanished without the
// event loop seeing an unmap or destroy notification.
type Sweeper struct {
	interval time.Duration
	target   Target
	logger   *slog.Logger
}

// NewSweeper creates a sweeper. A non-positive interval falls back to 30s.
func NewSweeper(cfg SweeperConfig, target Target) *Sweeper {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		interval: interval,
		target:   target,
		logger:   logger,
	}
}

// Run sweeps on every tick. Blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// SweepNow triggers an immediate pass and returns how many clients were
// dropped.
func (s *Sweeper) SweepNow(ctx context.Context) int {
	return s.sweep(ctx)
}

func (s *Sweeper) sweep(ctx context.Context) (dropped int) {
	// A panic in one pass must not take the window manager down.
	defer func() {
		if err := recover(); err != nil {
			s.logger.Error("sweeper panic recovered", "error", err)
			dropped = 0
		}
	}()

	n, err := s.target.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("sweep failed", "error", err)
		}
		return 0
	}
	if n > 0 {
		s.logger.Info("sweep dropped vanished windows", "count", n)
	}
	return n
}
