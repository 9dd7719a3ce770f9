package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/pollwatch/internal/logfields"
)

// Scheduler wraps gocron to provide re-arming one-shot execution: a task
// runs once after the configured delay, and the next run is armed only after
// the task fully returns. Runs can therefore never overlap, and a slow task
// proportionally lowers the effective frequency instead of stacking runs.
type Scheduler struct {
	scheduler gocron.Scheduler

	mu       sync.Mutex
	interval time.Duration
	job      gocron.Job
	stopped  bool
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down. Future runs are no longer armed; a task
// already executing runs to completion; callers needing to synchronize with
// an in-flight run must add their own join.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleRearming arms task to run once after the interval, re-arming after
// each completion.
func (s *Scheduler) ScheduleRearming(name string, interval time.Duration, task func()) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}
	s.mu.Lock()
	s.interval = interval
	s.mu.Unlock()
	return s.arm(name, task)
}

// SetInterval changes the relative delay used from the next re-arm onward.
// The already-armed run keeps its original delay.
func (s *Scheduler) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}
	s.mu.Lock()
	s.interval = interval
	s.mu.Unlock()
	return nil
}

// Interval returns the current re-arm delay.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) arm(name string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}

	// The previous one-shot job has completed; drop it before arming the next.
	if s.job != nil {
		_ = s.scheduler.RemoveJob(s.job.ID())
	}

	job, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(s.interval))),
		gocron.NewTask(func() {
			task()
			if err := s.arm(name, task); err != nil {
				slog.Error("Failed to re-arm scheduled task", logfields.Error(err))
			}
		}),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduled job: %w", err)
	}
	s.job = job
	return nil
}
