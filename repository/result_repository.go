// ABOUTME: This file persists ranking results to postgres for history queries
// ABOUTME: A no-op variant backs deployments that run without a database
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"rank-estimator/driver"
	"rank-estimator/models"
)

// ResultRepository implementation.
type resultRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewResultRepository creates a postgres-backed result store.
func NewResultRepository(db *pgxpool.Pool, logger *slog.Logger) ResultRepository {
	return &resultRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts one ranking result. Scores, rationale and sources are stored
// as JSON columns; the scalar columns back the history ordering.
func (r *resultRepository) Save(ctx context.Context, result *models.RankingResult) error {
	if r.db == nil {
		return fmt.Errorf("failed to save result: database connection is nil")
	}

	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	rationale, err := json.Marshal(result.Rationale)
	if err != nil {
		return fmt.Errorf("failed to marshal rationale: %w", err)
	}
	sources, err := json.Marshal(result.Sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}

	query := `
		INSERT INTO ranking_results
			(id, institution, country, institution_type, scores, composite,
			 tier, error_margin, rationale, sources, estimated, requester_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	err = driver.RetryDBOperation(ctx, r.logger, "SaveRankingResult", func() error {
		_, execErr := r.db.Exec(ctx, query,
			result.ID, result.Institution, result.Country, string(result.Type),
			scores, result.Composite, string(result.Tier), result.ErrorMargin,
			rationale, sources, result.Estimated, result.RequesterID, result.CreatedAt)
		return execErr
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save ranking result",
			"error", err, "institution", result.Institution)
		return fmt.Errorf("failed to save ranking result: %w", err)
	}

	r.logger.InfoContext(ctx, "ranking result saved",
		"id", result.ID, "institution", result.Institution)
	return nil
}

// History returns the requester's most recent results, newest first.
func (r *resultRepository) History(ctx context.Context, requesterID string, limit int) ([]*models.RankingResult, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to load history: database connection is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, institution, country, institution_type, scores, composite,
		       tier, error_margin, rationale, sources, estimated, created_at
		FROM ranking_results
		WHERE requester_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var results []*models.RankingResult

	err := driver.RetryDBOperation(ctx, r.logger, "LoadRankingHistory", func() error {
		rows, err := r.db.Query(ctx, query, requesterID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		results = nil
		for rows.Next() {
			var (
				result       models.RankingResult
				instType     string
				tier         string
				scoresJSON   []byte
				rationaleRaw []byte
				sourcesRaw   []byte
			)
			if err := rows.Scan(&result.ID, &result.Institution, &result.Country,
				&instType, &scoresJSON, &result.Composite, &tier,
				&result.ErrorMargin, &rationaleRaw, &sourcesRaw,
				&result.Estimated, &result.CreatedAt); err != nil {
				return err
			}

			result.Type = models.InstitutionType(instType)
			result.Tier = models.Tier(tier)
			result.RequesterID = requesterID
			if err := json.Unmarshal(scoresJSON, &result.Scores); err != nil {
				return fmt.Errorf("failed to unmarshal scores: %w", err)
			}
			if err := json.Unmarshal(rationaleRaw, &result.Rationale); err != nil {
				return fmt.Errorf("failed to unmarshal rationale: %w", err)
			}
			if err := json.Unmarshal(sourcesRaw, &result.Sources); err != nil {
				return fmt.Errorf("failed to unmarshal sources: %w", err)
			}

			results = append(results, &result)
		}

		return rows.Err()
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to load ranking history",
			"error", err, "requester_id", requesterID)
		return nil, fmt.Errorf("failed to load ranking history: %w", err)
	}

	return results, nil
}

// noopResultRepository discards results. Used when DB_ENABLED is false so
// the ranking flow does not depend on a database being present.
type noopResultRepository struct {
	logger *slog.Logger
}

// NewNoopResultRepository creates a result store that keeps nothing.
func NewNoopResultRepository(logger *slog.Logger) ResultRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &noopResultRepository{logger: logger}
}

func (r *noopResultRepository) Save(ctx context.Context, result *models.RankingResult) error {
	r.logger.DebugContext(ctx, "persistence disabled, result not saved", "id", result.ID)
	return nil
}

func (r *noopResultRepository) History(ctx context.Context, requesterID string, limit int) ([]*models.RankingResult, error) {
	return nil, nil
}
