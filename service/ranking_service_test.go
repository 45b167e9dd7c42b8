package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-estimator/models"
	apperrors "rank-estimator/utils/errors"
)

type stubEnablementRepo struct {
	lastRequester string
	enablement    models.SourceEnablement
	err           error
}

func (r *stubEnablementRepo) Get(ctx context.Context, requesterID string) (models.SourceEnablement, error) {
	r.lastRequester = requesterID
	if r.err != nil {
		return models.SourceEnablement{}, r.err
	}
	return r.enablement, nil
}

func (r *stubEnablementRepo) Set(ctx context.Context, requesterID string, enablement models.SourceEnablement) error {
	return nil
}

func (r *stubEnablementRepo) Toggle(ctx context.Context, requesterID string, source models.SourceType, enabled bool) (models.SourceEnablement, error) {
	return r.enablement, nil
}

type stubAggregator struct {
	payload *models.AggregatedPayload
	err     error
	calls   int
}

func (a *stubAggregator) FetchAll(ctx context.Context, name, country string, enablement models.SourceEnablement) (*models.AggregatedPayload, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	if a.payload != nil {
		return a.payload, nil
	}
	return &models.AggregatedPayload{Institution: name, Country: country}, nil
}

type stubResultRepo struct {
	saved   []*models.RankingResult
	saveErr error
	history []*models.RankingResult
}

func (r *stubResultRepo) Save(ctx context.Context, result *models.RankingResult) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, result)
	return nil
}

func (r *stubResultRepo) History(ctx context.Context, requesterID string, limit int) ([]*models.RankingResult, error) {
	return r.history, nil
}

func newTestRankingService(agg *stubAggregator, results *stubResultRepo) (RankingService, *stubEnablementRepo) {
	enablement := &stubEnablementRepo{enablement: models.DefaultEnablement()}
	svc := NewRankingService(enablement, agg, testEstimator(), results, testLoggerSvc())
	return svc, enablement
}

func TestRankingService_Rank(t *testing.T) {
	t.Run("should produce a complete result for a known institution", func(t *testing.T) {
		results := &stubResultRepo{}
		svc, _ := newTestRankingService(&stubAggregator{}, results)

		result, notes, err := svc.Rank(context.Background(), RankRequest{
			Institution: "Harvard University",
			Country:     "USA",
			RequesterID: "user-1",
		})

		require.NoError(t, err)
		assert.Empty(t, notes)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, "Harvard University", result.Institution)
		assert.Equal(t, "USA", result.Country)
		assert.Equal(t, 97.0, result.Composite)
		assert.Equal(t, models.TierAPlus, result.Tier)
		assert.False(t, result.Estimated)
		assert.Equal(t, "user-1", result.RequesterID)
		assert.False(t, result.CreatedAt.IsZero())
		assert.NotEmpty(t, result.Sources)
		require.Len(t, results.saved, 1)
		assert.Same(t, result, results.saved[0])
	})

	t.Run("should write one rationale line per score field", func(t *testing.T) {
		svc, _ := newTestRankingService(&stubAggregator{}, &stubResultRepo{})

		result, _, err := svc.Rank(context.Background(), RankRequest{
			Institution: "Harvard University",
			Country:     "USA",
		})

		require.NoError(t, err)
		require.Len(t, result.Rationale, len(models.ScoreFields))
		for _, field := range models.ScoreFields {
			line := result.Rationale[string(field)]
			require.NotEmpty(t, line, "field %s", field)
			assert.Contains(t, line, "% of maximum")
			assert.Contains(t, line, "verified knowledge-base entry")
			assert.Contains(t, line, "USA higher education system")
			assert.Contains(t, line, "Research University")
		}
	})

	t.Run("should mark rationale as backed when sources contributed", func(t *testing.T) {
		agg := &stubAggregator{payload: &models.AggregatedPayload{
			Institution: "Riverdale University",
			SourcesUsed: []models.SourceType{models.SourceWikipedia, models.SourceSearch},
			Wikipedia:   &models.WikipediaData{Summary: "A university."},
		}}
		svc, _ := newTestRankingService(agg, &stubResultRepo{})

		result, _, err := svc.Rank(context.Background(), RankRequest{Institution: "Riverdale University"})

		require.NoError(t, err)
		assert.Contains(t, result.Rationale[string(models.FieldAcademic)], "backed by wikipedia, search")
	})

	t.Run("should reject a blank institution name", func(t *testing.T) {
		agg := &stubAggregator{}
		svc, _ := newTestRankingService(agg, &stubResultRepo{})

		_, _, err := svc.Rank(context.Background(), RankRequest{Institution: "   "})

		var appErr *apperrors.AppContextError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Zero(t, agg.calls, "validation failures never reach aggregation")
	})

	t.Run("should substitute the default requester identity", func(t *testing.T) {
		svc, enablement := newTestRankingService(&stubAggregator{}, &stubResultRepo{})

		result, _, err := svc.Rank(context.Background(), RankRequest{Institution: "Riverdale University"})

		require.NoError(t, err)
		assert.Equal(t, DefaultRequesterID, enablement.lastRequester)
		assert.Equal(t, DefaultRequesterID, result.RequesterID)
	})

	t.Run("should pass rate-limit notes through untouched", func(t *testing.T) {
		note := models.SourceNote{
			Source: models.SourceSearch,
			Status: models.NoteStatusRateLimited,
		}
		agg := &stubAggregator{payload: &models.AggregatedPayload{
			Institution: "Riverdale University",
			Notes:       []models.SourceNote{note},
		}}
		svc, _ := newTestRankingService(agg, &stubResultRepo{})

		result, notes, err := svc.Rank(context.Background(), RankRequest{Institution: "Riverdale University"})

		require.NoError(t, err)
		require.NotNil(t, result)
		require.Len(t, notes, 1)
		assert.Equal(t, note, notes[0])
	})

	t.Run("should not fail the request when persistence fails", func(t *testing.T) {
		results := &stubResultRepo{saveErr: errors.New("connection refused")}
		svc, _ := newTestRankingService(&stubAggregator{}, results)

		result, _, err := svc.Rank(context.Background(), RankRequest{Institution: "Harvard University"})

		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("should fail when aggregation fails", func(t *testing.T) {
		agg := &stubAggregator{err: errors.New("cache backend unreachable")}
		svc, _ := newTestRankingService(agg, &stubResultRepo{})

		_, _, err := svc.Rank(context.Background(), RankRequest{Institution: "Riverdale University"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to aggregate source data")
	})

	t.Run("should trim the institution name before use", func(t *testing.T) {
		svc, _ := newTestRankingService(&stubAggregator{}, &stubResultRepo{})

		result, _, err := svc.Rank(context.Background(), RankRequest{Institution: "  Harvard University  "})

		require.NoError(t, err)
		assert.Equal(t, "Harvard University", result.Institution)
	})
}

func TestRankingService_History(t *testing.T) {
	t.Run("should delegate to the result repository", func(t *testing.T) {
		stored := []*models.RankingResult{{ID: "r-1"}, {ID: "r-2"}}
		svc, _ := newTestRankingService(&stubAggregator{}, &stubResultRepo{history: stored})

		history, err := svc.History(context.Background(), "user-1", 10)

		require.NoError(t, err)
		assert.Equal(t, stored, history)
	})
}
