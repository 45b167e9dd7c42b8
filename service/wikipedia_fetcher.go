// ABOUTME: This file fetches and normalizes encyclopedia data for an institution
// ABOUTME: Every attempt charges the wikipedia budget exactly once
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rank-estimator/driver"
	"rank-estimator/models"
	"rank-estimator/ratelimit"
	"rank-estimator/utils/htmltext"
)

const (
	summaryCharLimit   = 500
	maxRankingMentions = 5
	mentionCharLimit   = 200
	defaultRetryHint   = 60 * time.Second
	statusTooManyCalls = 429
)

// wikipediaFetcher wraps the encyclopedia client behind the rate limiter.
type wikipediaFetcher struct {
	client  *driver.WikipediaClient
	limiter *ratelimit.SourceLimiter
	logger  *slog.Logger
}

// NewWikipediaFetcher creates the encyclopedia source fetcher.
func NewWikipediaFetcher(client *driver.WikipediaClient, limiter *ratelimit.SourceLimiter, logger *slog.Logger) SourceFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &wikipediaFetcher{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

func (f *wikipediaFetcher) Source() models.SourceType {
	return models.SourceWikipedia
}

func (f *wikipediaFetcher) Fetch(ctx context.Context, name, country string, payload *models.AggregatedPayload) (bool, error) {
	if err := f.limiter.Check(models.SourceWikipedia); err != nil {
		var denial *ratelimit.LimitExceeded
		if errors.As(err, &denial) {
			return false, denial
		}
		return false, err
	}

	// One charge per attempt, taken whether the call below succeeds,
	// fails, or finds nothing.
	defer f.limiter.Record(models.SourceWikipedia)

	page, err := f.client.FetchPage(ctx, name)
	if err != nil {
		return false, f.translateError(ctx, name, err)
	}

	if page != nil && page.Disambiguation {
		page, err = f.resolveDisambiguation(ctx, page)
		if err != nil {
			return false, f.translateError(ctx, name, err)
		}
	}

	if page == nil || (page.Summary == "" && page.Extract == "") {
		f.logger.DebugContext(ctx, "no encyclopedia data found", "institution", name)
		return false, nil
	}

	payload.Wikipedia = &models.WikipediaData{
		Title:           page.Title,
		Summary:         htmltext.Truncate(htmltext.SanitizeFragment(page.Summary), summaryCharLimit),
		RankingMentions: extractRankingMentions(page.Extract),
	}
	return true, nil
}

// resolveDisambiguation retries once against the first candidate page. A
// second ambiguous or empty result is treated as not-found.
func (f *wikipediaFetcher) resolveDisambiguation(ctx context.Context, page *driver.WikipediaPage) (*driver.WikipediaPage, error) {
	if len(page.Options) == 0 {
		return nil, nil
	}

	f.logger.DebugContext(ctx, "resolving disambiguation",
		"title", page.Title, "candidate", page.Options[0])

	candidate, err := f.client.FetchTitle(ctx, page.Options[0])
	if err != nil {
		return nil, err
	}
	if candidate == nil || candidate.Disambiguation {
		return nil, nil
	}
	return candidate, nil
}

// translateError converts a 429 from the source into a rate-limit denial;
// everything else is logged and swallowed as not-found.
func (f *wikipediaFetcher) translateError(ctx context.Context, name string, err error) error {
	if denial := limitFromStatus(err, models.SourceWikipedia); denial != nil {
		return denial
	}
	f.logger.WarnContext(ctx, "encyclopedia fetch failed",
		"institution", name, "error", err)
	return nil
}

// limitFromStatus maps an HTTP 429 StatusError onto a *LimitExceeded using
// the source's retry hint, defaulting to 60 seconds.
func limitFromStatus(err error, source models.SourceType) *ratelimit.LimitExceeded {
	var statusErr *driver.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != statusTooManyCalls {
		return nil
	}

	retryAfter := statusErr.RetryAfter
	if retryAfter <= 0 {
		retryAfter = defaultRetryHint
	}
	return &ratelimit.LimitExceeded{
		Source:      source,
		ResetAt:     time.Now().Add(retryAfter),
		Description: fmt.Sprintf("source returned HTTP 429, retry after %s", retryAfter),
	}
}

// extractRankingMentions pulls up to five lines that mention rankings out of
// the page extract, each bounded to 200 characters.
func extractRankingMentions(extract string) []string {
	if extract == "" {
		return nil
	}

	var mentions []string
	for _, line := range strings.Split(extract, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "rank") && !strings.Contains(lower, "rating") {
			continue
		}
		mentions = append(mentions, htmltext.Truncate(line, mentionCharLimit))
		if len(mentions) == maxRankingMentions {
			break
		}
	}
	return mentions
}
