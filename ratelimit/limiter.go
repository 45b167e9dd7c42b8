// ABOUTME: This file enforces per-source call budgets across minute/hour/day windows
// ABOUTME: Check is read-only and returns a typed denial; Record is the sole mutator
package ratelimit

import (
	"fmt"
	"log/slog"
	"time"

	"rank-estimator/models"
)

// SourceLimiter pairs a budget tracker with one policy per source. Exceeding
// a ceiling is reported as *LimitExceeded, never as a panic or a fatal error.
type SourceLimiter struct {
	tracker  *BudgetTracker
	policies map[models.SourceType]Policy
	logger   *slog.Logger
}

// NewSourceLimiter creates a limiter over the given policy table. Sources
// missing from the table are unconstrained.
func NewSourceLimiter(policies map[models.SourceType]Policy, logger *slog.Logger) *SourceLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceLimiter{
		tracker:  NewBudgetTracker(),
		policies: policies,
		logger:   logger,
	}
}

// Check evaluates the minute, hour and day ceilings in that order and
// returns a *LimitExceeded for the first window at or over its ceiling.
// It records nothing; a denied attempt consumes no budget.
func (l *SourceLimiter) Check(source models.SourceType) error {
	policy, ok := l.policies[source]
	if !ok {
		return nil
	}

	counts := l.tracker.WindowCounts(source, WindowMinute, WindowHour, WindowDay)
	now := l.tracker.now()

	checks := []struct {
		used    int
		ceiling int
		horizon time.Duration
		label   string
	}{
		{counts[0], policy.PerMinute, WindowMinute, "minute"},
		{counts[1], policy.PerHour, WindowHour, "hour"},
		{counts[2], policy.PerDay, WindowDay, "day"},
	}

	for _, c := range checks {
		if c.used >= c.ceiling {
			denial := &LimitExceeded{
				Source:      source,
				ResetAt:     now.Add(c.horizon),
				Description: fmt.Sprintf("%d calls per %s", c.ceiling, c.label),
			}
			l.logger.Warn("rate limit reached",
				"source", source,
				"window", c.label,
				"used", c.used,
				"limit", c.ceiling,
				"reset_at", denial.ResetAt)
			return denial
		}
	}

	return nil
}

// Record charges one call against the source's budget. Fetchers call this
// exactly once per attempt whether or not the external call succeeded, so
// failed calls cannot be replayed to dodge the ceilings.
func (l *SourceLimiter) Record(source models.SourceType) {
	l.tracker.Record(source)
}

// StatusFor returns the budget snapshot of one source.
func (l *SourceLimiter) StatusFor(source models.SourceType) SourceStatus {
	policy := l.policies[source]
	counts := l.tracker.WindowCounts(source, WindowMinute, WindowHour, WindowDay)
	now := l.tracker.now()

	return SourceStatus{
		Source: source,
		Minute: WindowUsage{Used: counts[0], Limit: policy.PerMinute, ResetAt: now.Add(WindowMinute)},
		Hour:   WindowUsage{Used: counts[1], Limit: policy.PerHour, ResetAt: now.Add(WindowHour)},
		Day:    WindowUsage{Used: counts[2], Limit: policy.PerDay, ResetAt: now.Add(WindowDay)},
	}
}

// Status returns snapshots for every source in reporting order.
func (l *SourceLimiter) Status() []SourceStatus {
	statuses := make([]SourceStatus, 0, len(models.AllSources))
	for _, source := range models.AllSources {
		if _, ok := l.policies[source]; !ok {
			continue
		}
		statuses = append(statuses, l.StatusFor(source))
	}
	return statuses
}
