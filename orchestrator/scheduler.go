// ABOUTME: This file runs the service's periodic maintenance jobs
// ABOUTME: Failing jobs can stretch their schedule instead of hammering a backend
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultCooldown    = 30 * time.Second
	defaultCooldownCap = 5 * time.Minute
)

// Job describes one periodic maintenance task, such as the hourly metrics
// cleanup or a store sweep.
type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error

	// RunAtStart fires the job once before the first tick.
	RunAtStart bool

	// Errors matching CooldownOn stretch the schedule: the next run waits
	// Cooldown, doubling on repeated failures up to CooldownCap. Any other
	// error is logged and the normal interval resumes.
	CooldownOn  []error
	Cooldown    time.Duration
	CooldownCap time.Duration
}

func (j Job) coolsDownOn(err error) bool {
	for _, candidate := range j.CooldownOn {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func (j Job) nextCooldown(current time.Duration) time.Duration {
	start := j.Cooldown
	if start == 0 {
		start = defaultCooldown
	}
	limit := j.CooldownCap
	if limit == 0 {
		limit = defaultCooldownCap
	}

	if current == 0 {
		return start
	}
	if next := current * 2; next < limit {
		return next
	}
	return limit
}

// Scheduler owns a set of periodic jobs, each on its own goroutine. Jobs
// stop when the scheduler's context is cancelled or Shutdown is called.
type Scheduler struct {
	ctx    context.Context
	logger *slog.Logger
	stops  []context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(ctx context.Context, logger *slog.Logger) *Scheduler {
	return &Scheduler{ctx: ctx, logger: logger}
}

// Schedule starts the job immediately. Not safe to call concurrently with
// Shutdown.
func (s *Scheduler) Schedule(job Job) {
	jobCtx, cancel := context.WithCancel(s.ctx)
	s.stops = append(s.stops, cancel)

	s.logger.InfoContext(jobCtx, "scheduling job", "job", job.Name, "every", job.Every)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(jobCtx, job)
	}()
}

// Shutdown stops every job and waits for the in-flight runs to return.
func (s *Scheduler) Shutdown() {
	for _, stop := range s.stops {
		stop()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "job panicked", "job", job.Name, "panic", rec)
		}
	}()

	if job.RunAtStart {
		if err := job.Run(ctx); err != nil {
			s.logger.ErrorContext(ctx, "first job run failed", "job", job.Name, "error", err)
		}
	}

	timer := time.NewTimer(job.Every)
	defer timer.Stop()

	cooling := time.Duration(0)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "job stopped", "job", job.Name)
			return
		case <-timer.C:
		}

		err := job.Run(ctx)
		switch {
		case err == nil:
			if cooling > 0 {
				s.logger.InfoContext(ctx, "job recovered, back on schedule", "job", job.Name)
				cooling = 0
			}
			timer.Reset(job.Every)
		case job.coolsDownOn(err):
			cooling = job.nextCooldown(cooling)
			s.logger.WarnContext(ctx, "job cooling down",
				"job", job.Name, "wait", cooling, "error", err)
			timer.Reset(cooling)
		default:
			s.logger.ErrorContext(ctx, "job run failed", "job", job.Name, "error", err)
			timer.Reset(job.Every)
		}
	}
}
