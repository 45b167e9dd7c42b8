package ratelimit

import (
	"fmt"
	"time"

	"rank-estimator/models"
)

// Tracked window horizons. The day window is the longest; the budget tracker
// prunes anything older than it.
const (
	WindowMinute = time.Minute
	WindowHour   = time.Hour
	WindowDay    = 24 * time.Hour
)

// Policy holds the per-window call ceilings for one source.
type Policy struct {
	PerMinute int `json:"per_minute"`
	PerHour   int `json:"per_hour"`
	PerDay    int `json:"per_day"`
}

// DefaultPolicies returns the static per-source rate limit table. The
// ceilings reflect how tolerant each provider is; the encyclopedia API is
// the most generous, the government registry the strictest.
func DefaultPolicies() map[models.SourceType]Policy {
	return map[models.SourceType]Policy{
		models.SourceWikipedia:   {PerMinute: 100, PerHour: 2000, PerDay: 10000},
		models.SourceSearch:      {PerMinute: 10, PerHour: 100, PerDay: 1000},
		models.SourceWebometrics: {PerMinute: 30, PerHour: 500, PerDay: 5000},
		models.SourceQS:          {PerMinute: 20, PerHour: 200, PerDay: 2000},
		models.SourceTHE:         {PerMinute: 20, PerHour: 200, PerDay: 2000},
		models.SourceGovernment:  {PerMinute: 5, PerHour: 50, PerDay: 500},
	}
}

// LimitExceeded signals that a call would breach one of a source's windows.
// It is a recoverable condition: the aggregation layer converts it into an
// advisory note and falls back, it never fails a ranking request.
type LimitExceeded struct {
	Source      models.SourceType
	ResetAt     time.Time
	Description string
}

func (e *LimitExceeded) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s (resets %s)",
		e.Source, e.Description, e.ResetAt.Format(time.RFC3339))
}

// WindowUsage reports the consumed budget of one window.
type WindowUsage struct {
	Used    int       `json:"used"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"reset_at"`
}

// SourceStatus is the budget snapshot of one source across all windows.
type SourceStatus struct {
	Source models.SourceType `json:"source"`
	Minute WindowUsage       `json:"minute"`
	Hour   WindowUsage       `json:"hour"`
	Day    WindowUsage       `json:"day"`
}
