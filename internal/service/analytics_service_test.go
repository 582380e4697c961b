package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

func TestTrack_DefaultsUnknownIP(t *testing.T) {
	repo := new(MockAnalyticsRepo)
	svc := NewAnalyticsService(repo, testLogger())

	var captured *entity.AnalyticsEvent
	repo.On("Create", mock.AnythingOfType("*entity.AnalyticsEvent")).Run(func(args mock.Arguments) {
		captured = args.Get(0).(*entity.AnalyticsEvent)
	}).Return(nil)

	_, err := svc.Track(context.Background(), AnalyticsEventInput{Event: "page_view"}, RequestMeta{})
	require.NoError(t, err)

	require.NotNil(t, captured.IPAddress)
	assert.Equal(t, "unknown", *captured.IPAddress)
	assert.NotNil(t, captured.Data)
}

func TestTrackBatch_SizeLimits(t *testing.T) {
	repo := new(MockAnalyticsRepo)
	svc := NewAnalyticsService(repo, testLogger())

	_, _, err := svc.TrackBatch(context.Background(), nil, RequestMeta{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	oversized := make([]AnalyticsEventInput, MaxBatchEvents+1)
	for i := range oversized {
		oversized[i] = AnalyticsEventInput{Event: "page_view"}
	}
	_, _, err = svc.TrackBatch(context.Background(), oversized, RequestMeta{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTrackBatch_InsertsAll(t *testing.T) {
	repo := new(MockAnalyticsRepo)
	svc := NewAnalyticsService(repo, testLogger())

	repo.On("CreateBatch", mock.MatchedBy(func(rows []*entity.AnalyticsEvent) bool {
		return len(rows) == 2
	})).Return(int64(2), nil)

	rows, created, err := svc.TrackBatch(context.Background(), []AnalyticsEventInput{
		{Event: "page_view"},
		{Event: "cta_click"},
	}, RequestMeta{IPAddress: "5.6.7.8"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), created)
	require.Len(t, rows, 2)
	assert.Equal(t, "5.6.7.8", *rows[0].IPAddress)
}

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, float64(0), GrowthPercent(50, 0))
	assert.Equal(t, float64(100), GrowthPercent(20, 10))
	assert.Equal(t, float64(-50), GrowthPercent(5, 10))
	assert.Equal(t, 33.33, GrowthPercent(4, 3))
}

func TestAggregateSources(t *testing.T) {
	payloads := []map[string]interface{}{
		{"source": "twitter"},
		{"source": "twitter"},
		{"source": "newsletter"},
		{"other": "x"},
		nil,
		{"source": ""},
	}

	sources := AggregateSources(payloads, 10)

	require.Len(t, sources, 3)
	assert.Equal(t, SourceCount{Source: "direct", Count: 3}, sources[0])
	assert.Equal(t, SourceCount{Source: "twitter", Count: 2}, sources[1])
	assert.Equal(t, SourceCount{Source: "newsletter", Count: 1}, sources[2])
}

func TestAggregateSources_Limit(t *testing.T) {
	payloads := []map[string]interface{}{
		{"source": "a"},
		{"source": "b"},
		{"source": "c"},
	}
	assert.Len(t, AggregateSources(payloads, 2), 2)
}

func TestDashboard_ComposesSummary(t *testing.T) {
	repo := new(MockAnalyticsRepo)
	svc := NewAnalyticsService(repo, testLogger())

	repo.On("CountSince", mock.AnythingOfType("time.Time")).Return(int64(200), nil).Once()
	repo.On("DistinctIPSince", mock.AnythingOfType("time.Time")).Return(int64(40), nil)
	repo.On("CountSince", mock.AnythingOfType("time.Time")).Return(int64(15), nil).Once()
	repo.On("GroupByEvent", mock.Anything, 10).Return([]repository.GroupCount{{Key: "page_view", Count: 120}}, nil)
	repo.On("GroupByPage", mock.Anything, 10).Return([]repository.GroupCount{{Key: "/", Count: 80}}, nil)
	repo.On("CountEventSince", entity.EventWaitlistSignup, mock.Anything).Return(int64(12), nil)
	repo.On("CountEventSince", entity.EventContactFormSubmit, mock.Anything).Return(int64(5), nil)
	repo.On("CountEventSince", entity.EventNewsletterSignup, mock.Anything).Return(int64(9), nil)
	repo.On("CountEventSince", entity.EventInvestmentInquiry, mock.Anything).Return(int64(2), nil)
	repo.On("PayloadsSince", mock.Anything, trafficSourceSampleSize).Return([]map[string]interface{}{{"source": "twitter"}}, nil)
	repo.On("CountBetween", mock.Anything, mock.Anything).Return(int64(100), nil)
	repo.On("DistinctIPBetween", mock.Anything, mock.Anything).Return(int64(0), nil)

	summary, err := svc.Dashboard(30)
	require.NoError(t, err)

	assert.Equal(t, "30 days", summary.Period)
	assert.Equal(t, int64(200), summary.Summary.TotalEvents)
	assert.Equal(t, float64(100), summary.Summary.EventGrowth)
	// No visitors in the prior window: growth reports 0, not a division
	// blowup.
	assert.Equal(t, float64(0), summary.Summary.VisitorGrowth)
	assert.Equal(t, int64(12), summary.Conversions.Waitlist)
	require.Len(t, summary.TrafficSources, 1)
	assert.Equal(t, "twitter", summary.TrafficSources[0].Source)
}

func TestDashboard_DefaultsDays(t *testing.T) {
	repo := new(MockAnalyticsRepo)
	svc := NewAnalyticsService(repo, testLogger())

	repo.On("CountSince", mock.Anything).Return(int64(0), nil)
	repo.On("DistinctIPSince", mock.Anything).Return(int64(0), nil)
	repo.On("GroupByEvent", mock.Anything, 10).Return([]repository.GroupCount{}, nil)
	repo.On("GroupByPage", mock.Anything, 10).Return([]repository.GroupCount{}, nil)
	repo.On("CountEventSince", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("PayloadsSince", mock.Anything, mock.Anything).Return([]map[string]interface{}{}, nil)
	repo.On("CountBetween", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("DistinctIPBetween", mock.Anything, mock.Anything).Return(int64(0), nil)

	summary, err := svc.Dashboard(0)
	require.NoError(t, err)
	assert.Equal(t, "30 days", summary.Period)

	generated, err := time.Parse(time.RFC3339, summary.GeneratedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), generated, time.Minute)
}
