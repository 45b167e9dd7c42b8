// ABOUTME: This file orchestrates the full ranking pipeline for one request
// ABOUTME: Aggregation, path selection, tiering, rationale and persistence
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"rank-estimator/models"
	"rank-estimator/repository"
	apperrors "rank-estimator/utils/errors"
)

// DefaultRequesterID is used when a request carries no requester identity.
const DefaultRequesterID = "default"

// RankingService implementation.
type rankingService struct {
	enablement repository.EnablementRepository
	aggregator Aggregator
	estimator  *Estimator
	results    repository.ResultRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewRankingService creates the ranking orchestrator.
func NewRankingService(
	enablement repository.EnablementRepository,
	aggregator Aggregator,
	estimator *Estimator,
	results repository.ResultRepository,
	logger *slog.Logger,
) RankingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &rankingService{
		enablement: enablement,
		aggregator: aggregator,
		estimator:  estimator,
		results:    results,
		logger:     logger,
		now:        time.Now,
	}
}

// Rank runs the pipeline: enablement lookup, aggregation, estimation,
// tiering, rationale. A rate-limited source never fails the request; its
// note is returned alongside a fully usable result.
func (s *rankingService) Rank(ctx context.Context, req RankRequest) (*models.RankingResult, []models.SourceNote, error) {
	name := strings.TrimSpace(req.Institution)
	if name == "" {
		return nil, nil, apperrors.NewValidationContextError(
			"institution name is required",
			"service", "ranking_service", "rank",
			map[string]interface{}{"requester_id": req.RequesterID})
	}

	requesterID := req.RequesterID
	if requesterID == "" {
		requesterID = DefaultRequesterID
	}

	s.logger.InfoContext(ctx, "ranking request started",
		"institution", name,
		"country", req.Country,
		"requester_id", requesterID)

	enablement, err := s.enablement.Get(ctx, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load source enablement: %w", err)
	}

	payload, err := s.aggregator.FetchAll(ctx, name, req.Country, enablement)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to aggregate source data: %w", err)
	}

	outcome := s.estimator.Estimate(name, req.Country, payload)
	composite := outcome.Scores.Composite()
	tier := ClassifyTier(composite)

	result := &models.RankingResult{
		ID:          uuid.NewString(),
		Institution: name,
		Country:     outcome.Country,
		Type:        outcome.Type,
		Scores:      outcome.Scores,
		Composite:   composite,
		Tier:        tier,
		ErrorMargin: outcome.ErrorMargin,
		Rationale:   buildRationale(outcome, payload),
		Sources:     outcome.Citations,
		Estimated:   outcome.Estimated,
		RequesterID: requesterID,
		CreatedAt:   s.now(),
	}

	// History persistence is best-effort; the ranking itself already
	// succeeded.
	if err := s.results.Save(ctx, result); err != nil {
		s.logger.WarnContext(ctx, "failed to persist ranking result",
			"id", result.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "ranking request completed",
		"institution", name,
		"path", outcome.Path,
		"composite", composite,
		"tier", tier,
		"rate_limited_sources", len(payload.Notes))

	return result, payload.Notes, nil
}

// History returns the requester's recent results.
func (s *rankingService) History(ctx context.Context, requesterID string, limit int) ([]*models.RankingResult, error) {
	if requesterID == "" {
		requesterID = DefaultRequesterID
	}
	return s.results.History(ctx, requesterID, limit)
}

// buildRationale renders one explanatory line per score field: a
// qualitative bucket, what backed the score, and the institutional context.
func buildRationale(outcome EstimateOutcome, payload *models.AggregatedPayload) map[string]string {
	backing := "pattern-based estimate"
	if len(payload.SourcesUsed) > 0 {
		names := make([]string, len(payload.SourcesUsed))
		for i, source := range payload.SourcesUsed {
			names[i] = string(source)
		}
		backing = "backed by " + strings.Join(names, ", ")
	} else if outcome.Path == PathKnowledge {
		backing = "verified knowledge-base entry"
	}

	rationale := make(map[string]string, len(models.ScoreFields))
	for _, field := range models.ScoreFields {
		value := outcome.Scores.Field(field)
		max := models.FieldMax(field)
		pct := 0.0
		if max > 0 {
			pct = value / max * 100
		}

		line := fmt.Sprintf("%s (%.1f%% of maximum); %s", qualityBucket(pct), pct, backing)
		if outcome.Country != "" {
			line += fmt.Sprintf("; context: %s higher education system", outcome.Country)
		}
		line += fmt.Sprintf("; institution type: %s", outcome.Type.DisplayName())

		rationale[string(field)] = line
	}
	return rationale
}

func qualityBucket(pct float64) string {
	switch {
	case pct >= 80:
		return "excellent"
	case pct >= 60:
		return "good"
	case pct >= 40:
		return "average"
	default:
		return "below average"
	}
}
