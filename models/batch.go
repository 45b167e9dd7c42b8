package models

import "time"

// BatchRow is one institution to rank inside a batch job.
type BatchRow struct {
	Institution string `json:"institution"`
	Country     string `json:"country"`
}

// BatchItemResult is the outcome of one batch row. Result is nil when the
// row failed; Error then carries the annotation and processing continued.
type BatchItemResult struct {
	Index       int            `json:"index"`
	Institution string         `json:"institution"`
	Country     string         `json:"country"`
	Result      *RankingResult `json:"result,omitempty"`
	Position    int            `json:"position,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// BatchStatus is the lifecycle state of a batch job.
type BatchStatus string

const (
	BatchRunning   BatchStatus = "running"
	BatchCompleted BatchStatus = "completed"
	BatchCancelled BatchStatus = "cancelled"
	BatchFailed    BatchStatus = "failed"
)

// BatchEventKind labels the events a batch job emits while running.
type BatchEventKind string

const (
	BatchEventProgress   BatchEventKind = "progress"
	BatchEventCheckpoint BatchEventKind = "checkpoint"
	BatchEventComplete   BatchEventKind = "complete"
	BatchEventError      BatchEventKind = "error"
)

// BatchEvent is emitted by the batch worker and consumed by the progress
// loop. The worker never knows how events are displayed.
type BatchEvent struct {
	Kind          BatchEventKind `json:"kind"`
	JobID         string         `json:"job_id"`
	Processed     int            `json:"processed"`
	Total         int            `json:"total"`
	RateLimitHits int            `json:"rate_limit_hits"`
	Elapsed       time.Duration  `json:"elapsed"`
	Message       string         `json:"message,omitempty"`
	At            time.Time      `json:"at"`
}

// BatchSnapshot is the pollable view of a batch job.
type BatchSnapshot struct {
	JobID            string        `json:"job_id"`
	RequesterID      string        `json:"requester_id"`
	Status           BatchStatus   `json:"status"`
	Total            int           `json:"total"`
	Processed        int           `json:"processed"`
	Failed           int           `json:"failed"`
	RateLimitHits    int           `json:"rate_limit_hits"`
	Elapsed          time.Duration `json:"elapsed"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       *time.Time    `json:"finished_at,omitempty"`
	LastCheckpointAt *time.Time    `json:"last_checkpoint_at,omitempty"`
	LastError        string        `json:"last_error,omitempty"`
}
