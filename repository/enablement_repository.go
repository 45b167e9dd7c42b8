// ABOUTME: This file keeps per-requester source toggles in memory
// ABOUTME: Unknown requesters get the default enablement lazily
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rank-estimator/models"
)

type enablementEntry struct {
	enablement models.SourceEnablement
	lastSeen   time.Time
}

// EnablementRepository implementation.
type enablementRepository struct {
	logger *slog.Logger
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]*enablementEntry

	now func() time.Time
}

// NewEnablementRepository creates an in-memory enablement store. Entries
// idle longer than ttl are dropped by Sweep.
func NewEnablementRepository(ttl time.Duration, logger *slog.Logger) EnablementRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &enablementRepository{
		logger:  logger,
		ttl:     ttl,
		entries: make(map[string]*enablementEntry),
		now:     time.Now,
	}
}

// Get returns the requester's enablement, creating the default entry on
// first sight.
func (r *enablementRepository) Get(ctx context.Context, requesterID string) (models.SourceEnablement, error) {
	if requesterID == "" {
		return models.SourceEnablement{}, fmt.Errorf("requester id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[requesterID]
	if !ok {
		entry = &enablementEntry{enablement: models.DefaultEnablement()}
		r.entries[requesterID] = entry
		r.logger.DebugContext(ctx, "created default enablement", "requester_id", requesterID)
	}
	entry.lastSeen = r.now()

	return entry.enablement, nil
}

func (r *enablementRepository) Set(ctx context.Context, requesterID string, enablement models.SourceEnablement) error {
	if requesterID == "" {
		return fmt.Errorf("requester id cannot be empty")
	}

	enablement.UpdatedAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[requesterID] = &enablementEntry{
		enablement: enablement,
		lastSeen:   r.now(),
	}

	return nil
}

// Toggle flips one source and returns the updated enablement. Sources
// without a toggle are rejected.
func (r *enablementRepository) Toggle(ctx context.Context, requesterID string, source models.SourceType, enabled bool) (models.SourceEnablement, error) {
	if requesterID == "" {
		return models.SourceEnablement{}, fmt.Errorf("requester id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[requesterID]
	if !ok {
		entry = &enablementEntry{enablement: models.DefaultEnablement()}
		r.entries[requesterID] = entry
	}

	switch source {
	case models.SourceWikipedia:
		entry.enablement.Wikipedia = enabled
	case models.SourceSearch:
		entry.enablement.Search = enabled
	case models.SourceWebometrics:
		entry.enablement.Webometrics = enabled
	default:
		return models.SourceEnablement{}, fmt.Errorf("source %q has no toggle", source)
	}

	entry.enablement.UpdatedAt = r.now()
	entry.lastSeen = r.now()

	r.logger.InfoContext(ctx, "source toggled",
		"requester_id", requesterID,
		"source", source,
		"enabled", enabled)

	return entry.enablement, nil
}

// Sweep drops entries idle longer than the TTL and returns how many were
// removed.
func (r *enablementRepository) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}

	if removed > 0 {
		r.logger.Debug("swept idle enablement entries", "removed", removed)
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (r *enablementRepository) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
