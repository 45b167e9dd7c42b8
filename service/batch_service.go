// ABOUTME: This file runs asynchronous batch ranking jobs with progress events
// ABOUTME: Jobs are cooperatively cancellable between items and keep partial results
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rank-estimator/config"
	"rank-estimator/models"
	apperrors "rank-estimator/utils/errors"
)

type batchJob struct {
	id          string
	requesterID string
	rows        []models.BatchRow

	mu               sync.Mutex
	status           models.BatchStatus
	results          []models.BatchItemResult
	processed        int
	failed           int
	rateLimitHits    int
	startedAt        time.Time
	finishedAt       *time.Time
	lastCheckpointAt *time.Time
	lastError        string

	cancel context.CancelFunc
}

// BatchService implementation.
type batchService struct {
	ranking RankingService
	cfg     config.BatchConfig
	logger  *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*batchJob

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewBatchService creates the batch job runner.
func NewBatchService(ranking RankingService, cfg config.BatchConfig, logger *slog.Logger) BatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &batchService{
		ranking: ranking,
		cfg:     cfg,
		logger:  logger,
		jobs:    make(map[string]*batchJob),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Start registers a job and spawns its worker. The worker runs detached
// from the request context; only Cancel stops it early.
func (s *batchService) Start(ctx context.Context, rows []models.BatchRow, requesterID string) (string, error) {
	if len(rows) == 0 {
		return "", apperrors.NewValidationContextError(
			"batch must contain at least one row",
			"service", "batch_service", "start", nil)
	}
	if requesterID == "" {
		requesterID = DefaultRequesterID
	}

	jobCtx, cancel := context.WithCancel(context.Background())
	job := &batchJob{
		id:          uuid.NewString(),
		requesterID: requesterID,
		rows:        rows,
		status:      models.BatchRunning,
		startedAt:   s.now(),
		cancel:      cancel,
	}

	s.mu.Lock()
	s.jobs[job.id] = job
	s.mu.Unlock()

	events := make(chan models.BatchEvent, 16)
	go s.consumeEvents(job, events)
	go s.runJob(jobCtx, job, events)

	s.logger.InfoContext(ctx, "batch job started",
		"job_id", job.id,
		"requester_id", requesterID,
		"rows", len(rows))
	return job.id, nil
}

// runJob processes rows sequentially. Per-item failures are annotated and
// processing continues; cancellation is honored between items.
func (s *batchService) runJob(ctx context.Context, job *batchJob, events chan<- models.BatchEvent) {
	defer close(events)

	total := len(job.rows)
	lastProgress := s.now()
	lastCheckpoint := s.now()

	for i, row := range job.rows {
		if ctx.Err() != nil {
			s.finalize(job, models.BatchCancelled)
			events <- s.event(job, models.BatchEventComplete, total,
				fmt.Sprintf("cancelled after %d of %d items", job.processed, total))
			return
		}

		item := models.BatchItemResult{
			Index:       i,
			Institution: row.Institution,
			Country:     row.Country,
		}

		rateLimited := false
		result, notes, err := s.ranking.Rank(ctx, RankRequest{
			Institution: row.Institution,
			Country:     row.Country,
			RequesterID: job.requesterID,
		})
		if err != nil && ctx.Err() != nil {
			// Cancelled mid-item: the row is dropped, only fully
			// completed rows make the partial result set.
			s.finalize(job, models.BatchCancelled)
			events <- s.event(job, models.BatchEventComplete, total,
				fmt.Sprintf("cancelled after %d of %d items", job.processed, total))
			return
		}
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = result
			rateLimited = len(notes) > 0
		}

		job.mu.Lock()
		job.results = append(job.results, item)
		job.processed++
		if item.Error != "" {
			job.failed++
			job.lastError = item.Error
		}
		if rateLimited {
			job.rateLimitHits++
		}
		processed := job.processed
		job.mu.Unlock()

		if item.Error != "" {
			events <- s.event(job, models.BatchEventError, total, item.Error)
		}

		if processed%s.cfg.ProgressEvery == 0 || s.now().Sub(lastProgress) >= s.cfg.ProgressInterval {
			events <- s.event(job, models.BatchEventProgress, total, "")
			lastProgress = s.now()
		}
		if processed%s.cfg.CheckpointEvery == 0 || s.now().Sub(lastCheckpoint) >= s.cfg.CheckpointInterval {
			events <- s.event(job, models.BatchEventCheckpoint, total, "")
			lastCheckpoint = s.now()
		}

		if i == total-1 {
			break
		}

		delay := s.cfg.ItemDelay
		switch {
		case rateLimited:
			delay = s.cfg.RateLimitDelay
		case processed%s.cfg.SlowdownEvery == 0:
			delay = s.cfg.SlowdownDelay
		}
		if err := s.sleep(ctx, delay); err != nil {
			s.finalize(job, models.BatchCancelled)
			events <- s.event(job, models.BatchEventComplete, total,
				fmt.Sprintf("cancelled after %d of %d items", job.processed, total))
			return
		}
	}

	s.finalize(job, models.BatchCompleted)
	events <- s.event(job, models.BatchEventComplete, total, "all items processed")
}

// finalize re-ranks the completed rows among themselves (positions by
// composite, best first) and marks the job finished. A cancelled job keeps
// exactly the rows completed before cancellation.
func (s *batchService) finalize(job *batchJob, status models.BatchStatus) {
	job.mu.Lock()
	defer job.mu.Unlock()

	ranked := make([]*models.BatchItemResult, 0, len(job.results))
	for i := range job.results {
		if job.results[i].Result != nil {
			ranked = append(ranked, &job.results[i])
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Result.Composite > ranked[b].Result.Composite
	})
	for pos, item := range ranked {
		item.Position = pos + 1
	}

	now := s.now()
	job.status = status
	job.finishedAt = &now
}

func (s *batchService) event(job *batchJob, kind models.BatchEventKind, total int, message string) models.BatchEvent {
	job.mu.Lock()
	defer job.mu.Unlock()
	return models.BatchEvent{
		Kind:          kind,
		JobID:         job.id,
		Processed:     job.processed,
		Total:         total,
		RateLimitHits: job.rateLimitHits,
		Elapsed:       s.now().Sub(job.startedAt),
		Message:       message,
		At:            s.now(),
	}
}

// consumeEvents is the progress loop: it folds worker events into the
// pollable snapshot state and logs them. The worker never knows how events
// are displayed.
func (s *batchService) consumeEvents(job *batchJob, events <-chan models.BatchEvent) {
	for event := range events {
		switch event.Kind {
		case models.BatchEventCheckpoint:
			job.mu.Lock()
			at := event.At
			job.lastCheckpointAt = &at
			job.mu.Unlock()
			s.logger.Info("batch checkpoint",
				"job_id", event.JobID,
				"processed", event.Processed,
				"total", event.Total)
		case models.BatchEventProgress:
			s.logger.Info("batch progress",
				"job_id", event.JobID,
				"processed", event.Processed,
				"total", event.Total,
				"rate_limit_hits", event.RateLimitHits,
				"elapsed", event.Elapsed)
		case models.BatchEventError:
			s.logger.Warn("batch item failed",
				"job_id", event.JobID,
				"processed", event.Processed,
				"error", event.Message)
		case models.BatchEventComplete:
			s.logger.Info("batch finished",
				"job_id", event.JobID,
				"processed", event.Processed,
				"total", event.Total,
				"message", event.Message)
		}
	}
}

// Cancel requests cooperative cancellation. The worker stops between items
// and the job keeps its partial results.
func (s *batchService) Cancel(jobID string) error {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return apperrors.NewNotFoundContextError(
			"batch job not found",
			"service", "batch_service", "cancel",
			map[string]interface{}{"job_id": jobID})
	}

	job.mu.Lock()
	running := job.status == models.BatchRunning
	job.mu.Unlock()
	if !running {
		return apperrors.NewValidationContextError(
			"batch job is not running",
			"service", "batch_service", "cancel",
			map[string]interface{}{"job_id": jobID})
	}

	job.cancel()
	s.logger.Info("batch cancellation requested", "job_id", jobID)
	return nil
}

// Snapshot returns the pollable view of one job.
func (s *batchService) Snapshot(jobID string) (*models.BatchSnapshot, error) {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundContextError(
			"batch job not found",
			"service", "batch_service", "snapshot",
			map[string]interface{}{"job_id": jobID})
	}

	snapshot := s.snapshotOf(job)
	return &snapshot, nil
}

func (s *batchService) snapshotOf(job *batchJob) models.BatchSnapshot {
	job.mu.Lock()
	defer job.mu.Unlock()

	elapsed := s.now().Sub(job.startedAt)
	if job.finishedAt != nil {
		elapsed = job.finishedAt.Sub(job.startedAt)
	}

	return models.BatchSnapshot{
		JobID:            job.id,
		RequesterID:      job.requesterID,
		Status:           job.status,
		Total:            len(job.rows),
		Processed:        job.processed,
		Failed:           job.failed,
		RateLimitHits:    job.rateLimitHits,
		Elapsed:          elapsed,
		StartedAt:        job.startedAt,
		FinishedAt:       job.finishedAt,
		LastCheckpointAt: job.lastCheckpointAt,
		LastError:        job.lastError,
	}
}

// Results returns a copy of the job's item results collected so far.
func (s *batchService) Results(jobID string) ([]models.BatchItemResult, error) {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundContextError(
			"batch job not found",
			"service", "batch_service", "results",
			map[string]interface{}{"job_id": jobID})
	}

	job.mu.Lock()
	defer job.mu.Unlock()
	results := make([]models.BatchItemResult, len(job.results))
	copy(results, job.results)
	return results, nil
}

// List returns snapshots of every known job, newest first.
func (s *batchService) List() []models.BatchSnapshot {
	s.mu.RLock()
	jobs := make([]*batchJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.RUnlock()

	snapshots := make([]models.BatchSnapshot, 0, len(jobs))
	for _, job := range jobs {
		snapshots = append(snapshots, s.snapshotOf(job))
	}
	sort.Slice(snapshots, func(a, b int) bool {
		return snapshots[a].StartedAt.After(snapshots[b].StartedAt)
	})
	return snapshots
}
