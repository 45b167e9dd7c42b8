// ABOUTME: This file fetches the Webometrics world rank for an institution
// ABOUTME: Misses and transport failures are not errors, only budget denials are
package service

import (
	"context"
	"errors"
	"log/slog"

	"rank-estimator/driver"
	"rank-estimator/models"
	"rank-estimator/ratelimit"
)

// webometricsFetcher wraps the rankings-site client behind the rate limiter.
type webometricsFetcher struct {
	client  *driver.WebometricsClient
	limiter *ratelimit.SourceLimiter
	logger  *slog.Logger
}

// NewWebometricsFetcher creates the ranking-site source fetcher.
func NewWebometricsFetcher(client *driver.WebometricsClient, limiter *ratelimit.SourceLimiter, logger *slog.Logger) SourceFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &webometricsFetcher{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

func (f *webometricsFetcher) Source() models.SourceType {
	return models.SourceWebometrics
}

func (f *webometricsFetcher) Fetch(ctx context.Context, name, country string, payload *models.AggregatedPayload) (bool, error) {
	if err := f.limiter.Check(models.SourceWebometrics); err != nil {
		var denial *ratelimit.LimitExceeded
		if errors.As(err, &denial) {
			return false, denial
		}
		return false, err
	}

	defer f.limiter.Record(models.SourceWebometrics)

	profile, err := f.client.Lookup(ctx, name)
	if err != nil {
		if denial := limitFromStatus(err, models.SourceWebometrics); denial != nil {
			return false, denial
		}
		f.logger.WarnContext(ctx, "webometrics lookup failed",
			"institution", name, "error", err)
		return false, nil
	}

	if profile == nil {
		f.logger.DebugContext(ctx, "no webometrics profile found", "institution", name)
		return false, nil
	}

	payload.Webometrics = &models.WebometricsData{
		WorldRank:  profile.WorldRank,
		Country:    country,
		ProfileURL: profile.URL,
	}
	return true, nil
}
