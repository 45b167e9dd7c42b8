package repository

import (
	"context"
	"time"

	"rank-estimator/models"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/repository_mocks.go -package=mocks

// EnablementRepository stores per-requester source toggles.
type EnablementRepository interface {
	Get(ctx context.Context, requesterID string) (models.SourceEnablement, error)
	Set(ctx context.Context, requesterID string, enablement models.SourceEnablement) error
	Toggle(ctx context.Context, requesterID string, source models.SourceType, enabled bool) (models.SourceEnablement, error)
}

// PayloadCacheRepository caches aggregated source payloads per institution.
// Keys are built by the aggregator; a miss returns (nil, false, nil).
type PayloadCacheRepository interface {
	Get(ctx context.Context, key string) (*models.AggregatedPayload, bool, error)
	Set(ctx context.Context, key string, payload *models.AggregatedPayload) error
}

// Sweepable is implemented by the in-memory stores that expire idle
// entries. The bootstrap starts one sweeper per store that supports it.
type Sweepable interface {
	Sweep() int
	StartSweeper(ctx context.Context, interval time.Duration)
}

// ResultRepository persists ranking results for history queries.
type ResultRepository interface {
	Save(ctx context.Context, result *models.RankingResult) error
	History(ctx context.Context, requesterID string, limit int) ([]*models.RankingResult, error)
}
