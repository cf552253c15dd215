// Package worker runs the polling loop: an interval scheduler that fires
// fetch-and-deliver cycles, plus the status HTTP server exposing health,
// on-demand ticks, the platform descriptor, and Prometheus metrics.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/usecase/fetch"
)

// CycleRunner is the contract between the scheduler and the pipeline.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*fetch.CycleStats, error)
}

// Scheduler fires pipeline cycles on a fixed interval. The first cycle runs
// immediately on Start; subsequent cycles follow the configured interval.
// Start and Stop are idempotent.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// NewScheduler creates a scheduler firing runner every interval, bounding
// each cycle with timeout.
func NewScheduler(runner CycleRunner, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start begins the schedule and fires one cycle immediately in the
// background. Calling Start on a started scheduler is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.logger.Warn("scheduler already started, ignoring")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.runOnce); err != nil {
		return fmt.Errorf("register schedule: %w", err)
	}

	s.cron = c
	s.started = true
	c.Start()

	s.logger.Info("scheduler started",
		slog.Duration("interval", s.interval),
		slog.Duration("cycle_timeout", s.timeout))

	// Fire the first cycle without waiting a full interval.
	go s.runOnce()

	return nil
}

// Stop halts the schedule. Cycles already in flight run to completion; their
// context is not cancelled here. Calling Stop on a stopped scheduler is a
// no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	<-s.cron.Stop().Done()
	s.started = false
	s.logger.Info("scheduler stopped")
}

// runOnce executes one cycle with the configured timeout and records its
// outcome.
func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	stats, err := s.runner.RunCycle(ctx)
	duration := time.Since(start)

	switch {
	case errors.Is(err, fetch.ErrCycleInProgress):
		cycleRunsTotal.WithLabelValues("skipped").Inc()
		return
	case err != nil:
		s.logger.Error("scheduled cycle failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		cycleRunsTotal.WithLabelValues("failure").Inc()
		cycleDurationSeconds.Observe(duration.Seconds())
		return
	}

	cycleRunsTotal.WithLabelValues("success").Inc()
	cycleDurationSeconds.Observe(duration.Seconds())
	lastSuccessTimestamp.SetToCurrentTime()

	s.logger.Info("scheduled cycle finished",
		slog.Int("new_items", stats.NewItems),
		slog.Int("delivered", stats.Delivered),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", duration))
}
