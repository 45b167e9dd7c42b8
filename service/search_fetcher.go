// ABOUTME: This file runs the three fixed ranking search queries for an institution
// ABOUTME: A mid-run rate-limit denial abandons the remaining queries
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rank-estimator/driver"
	"rank-estimator/models"
	"rank-estimator/ratelimit"
	"rank-estimator/utils/htmltext"
)

const (
	maxHitsPerQuery  = 3
	snippetCharLimit = 300
)

// rankingQueries builds the fixed query set run for each institution.
func rankingQueries(name string) []string {
	return []string{
		fmt.Sprintf("%s QS World University Rankings", name),
		fmt.Sprintf("%s Times Higher Education ranking", name),
		fmt.Sprintf("%s ARWU ranking", name),
	}
}

// searchFetcher wraps the HTML search client behind the rate limiter. Each
// query is a separate budget charge; the mandatory politeness delay is
// enforced by the driver's per-host pacing, not here.
type searchFetcher struct {
	client  *driver.SearchClient
	limiter *ratelimit.SourceLimiter
	logger  *slog.Logger
}

// NewSearchFetcher creates the web-search source fetcher.
func NewSearchFetcher(client *driver.SearchClient, limiter *ratelimit.SourceLimiter, logger *slog.Logger) SourceFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchFetcher{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

func (f *searchFetcher) Source() models.SourceType {
	return models.SourceSearch
}

// Fetch runs the ranking queries in order. A *LimitExceeded from the check
// or a 429 from the source abandons the remaining queries but keeps whatever
// hits were already collected; the denial is returned alongside them so the
// aggregator can note it.
func (f *searchFetcher) Fetch(ctx context.Context, name, country string, payload *models.AggregatedPayload) (bool, error) {
	var (
		results []models.SearchQueryResult
		denial  *ratelimit.LimitExceeded
	)

	for i, query := range rankingQueries(name) {
		if err := f.limiter.Check(models.SourceSearch); err != nil {
			if errors.As(err, &denial) {
				f.logger.WarnContext(ctx, "search budget exhausted, abandoning remaining queries",
					"institution", name, "completed_queries", i)
				break
			}
			return false, err
		}

		hits, err := f.runQuery(ctx, query)
		if err != nil {
			if denial = limitFromStatus(err, models.SourceSearch); denial != nil {
				f.logger.WarnContext(ctx, "search source throttled, abandoning remaining queries",
					"institution", name, "completed_queries", i)
				break
			}
			f.logger.WarnContext(ctx, "search query failed",
				"query", query, "error", err)
			continue
		}

		if len(hits) > 0 {
			results = append(results, models.SearchQueryResult{Query: query, Hits: hits})
		}
	}

	contributed := len(results) > 0
	if contributed {
		payload.Search = &models.SearchData{Queries: results}
	}

	if denial != nil {
		return contributed, denial
	}
	return contributed, nil
}

// runQuery performs one search attempt. The budget charge covers the attempt
// regardless of outcome.
func (f *searchFetcher) runQuery(ctx context.Context, query string) ([]models.SearchHit, error) {
	defer f.limiter.Record(models.SourceSearch)

	raw, err := f.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	hits := make([]models.SearchHit, 0, len(raw))
	for _, hit := range raw {
		hits = append(hits, models.SearchHit{
			Title:   htmltext.Truncate(hit.Title, mentionCharLimit),
			URL:     hit.URL,
			Snippet: htmltext.Truncate(hit.Snippet, snippetCharLimit),
		})
		if len(hits) == maxHitsPerQuery {
			break
		}
	}
	return hits, nil
}
