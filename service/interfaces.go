package service

import (
	"context"

	"rank-estimator/models"
	"rank-estimator/ratelimit"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/service_mocks.go -package=mocks

// SourceFetcher wraps one external data source. Fetch checks the rate
// limiter first, performs the external call, normalizes whatever is usable
// into the payload section it owns, and charges exactly one budget call per
// attempt. It reports whether it contributed non-empty data. The only error
// it returns is *ratelimit.LimitExceeded; ordinary not-found and transport
// failures come back as (false, nil).
type SourceFetcher interface {
	Source() models.SourceType
	Fetch(ctx context.Context, name, country string, payload *models.AggregatedPayload) (bool, error)
}

// Aggregator collects payloads from the enabled sources for one institution.
type Aggregator interface {
	FetchAll(ctx context.Context, name, country string, enablement models.SourceEnablement) (*models.AggregatedPayload, error)
}

// RankRequest is one inbound ranking request.
type RankRequest struct {
	Institution string
	Country     string
	RequesterID string
}

// RankingService runs the full ranking pipeline for one request. Rank also
// returns the advisory notes collected during aggregation (rate-limited
// sources) so the transport layer can surface them next to the result.
type RankingService interface {
	Rank(ctx context.Context, req RankRequest) (*models.RankingResult, []models.SourceNote, error)
	History(ctx context.Context, requesterID string, limit int) ([]*models.RankingResult, error)
}

// BatchService runs asynchronous batch ranking jobs.
type BatchService interface {
	Start(ctx context.Context, rows []models.BatchRow, requesterID string) (string, error)
	Cancel(jobID string) error
	Snapshot(jobID string) (*models.BatchSnapshot, error)
	Results(jobID string) ([]models.BatchItemResult, error)
	List() []models.BatchSnapshot
}

// LimitReporter exposes the per-source budget snapshots for the limits
// endpoint.
type LimitReporter interface {
	Status() []ratelimit.SourceStatus
	StatusFor(source models.SourceType) ratelimit.SourceStatus
}
