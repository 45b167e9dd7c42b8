// ABOUTME: This file implements per-source sliding-window call accounting
// ABOUTME: Tracks timestamps of every attempt and answers window-count queries
package ratelimit

import (
	"sync"
	"time"

	"rank-estimator/models"
)

// BudgetTracker keeps an append-only, time-pruned log of call timestamps per
// source. Record is the only mutator; counting never mutates. All methods are
// safe for concurrent use from multiple in-flight requests.
type BudgetTracker struct {
	mu    sync.Mutex
	calls map[models.SourceType][]time.Time
	now   func() time.Time
}

// NewBudgetTracker creates an empty tracker.
func NewBudgetTracker() *BudgetTracker {
	return &BudgetTracker{
		calls: make(map[models.SourceType][]time.Time),
		now:   time.Now,
	}
}

// Record appends "now" to the source's call log and prunes entries older
// than the longest tracked window.
func (t *BudgetTracker) Record(source models.SourceType) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.calls[source] = append(t.pruneLocked(source, now), now)
}

// WindowCount returns how many calls were recorded within the given window.
func (t *BudgetTracker) WindowCount(source models.SourceType, window time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.countLocked(source, window, t.now())
}

// WindowCounts returns the counts for several windows in one atomic read, so
// a multi-window ceiling check cannot interleave with a concurrent Record.
func (t *BudgetTracker) WindowCounts(source models.SourceType, windows ...time.Duration) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	counts := make([]int, len(windows))
	for i, w := range windows {
		counts[i] = t.countLocked(source, w, now)
	}
	return counts
}

func (t *BudgetTracker) countLocked(source models.SourceType, window time.Duration, now time.Time) int {
	cutoff := now.Add(-window)

	count := 0
	for _, ts := range t.calls[source] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}

// pruneLocked drops entries older than the day window. The log is
// append-ordered, so the first retained index bounds the slice.
func (t *BudgetTracker) pruneLocked(source models.SourceType, now time.Time) []time.Time {
	log := t.calls[source]
	cutoff := now.Add(-WindowDay)

	keep := 0
	for keep < len(log) && !log[keep].After(cutoff) {
		keep++
	}
	return log[keep:]
}
