package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

// MaxBatchEvents caps the batch tracking endpoint.
const MaxBatchEvents = 100

// trafficSourceSampleSize caps the payload fetch for the source breakdown.
const trafficSourceSampleSize = 1000

// AnalyticsEventInput is one validated tracking call.
type AnalyticsEventInput struct {
	Event string
	Page  *string
	Data  map[string]interface{}
}

// SourceCount is one bucket of the traffic-source breakdown.
type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// ConversionCounts are the four named conversion events for the dashboard.
type ConversionCounts struct {
	Waitlist   int64 `json:"waitlist"`
	Contact    int64 `json:"contact"`
	Newsletter int64 `json:"newsletter"`
	Investment int64 `json:"investment"`
}

// DashboardSummaryTotals holds the headline numbers of the dashboard.
type DashboardSummaryTotals struct {
	TotalEvents    int64   `json:"totalEvents"`
	UniqueVisitors int64   `json:"uniqueVisitors"`
	RecentActivity int64   `json:"recentActivity"`
	EventGrowth    float64 `json:"eventGrowth"`
	VisitorGrowth  float64 `json:"visitorGrowth"`
}

// DashboardSummary is the rolling-window analytics dashboard.
type DashboardSummary struct {
	Period         string                  `json:"period"`
	Summary        DashboardSummaryTotals  `json:"summary"`
	TopEvents      []repository.GroupCount `json:"topEvents"`
	TopPages       []repository.GroupCount `json:"topPages"`
	Conversions    ConversionCounts        `json:"conversions"`
	TrafficSources []SourceCount           `json:"trafficSources"`
	GeneratedAt    string                  `json:"generatedAt"`
}

// AnalyticsService implements event tracking and reporting.
type AnalyticsService struct {
	repo repository.AnalyticsRepository
	log  *logrus.Logger
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(repo repository.AnalyticsRepository, log *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, log: log}
}

func eventFromInput(input AnalyticsEventInput, meta RequestMeta, now time.Time) *entity.AnalyticsEvent {
	data := input.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	row := &entity.AnalyticsEvent{
		Event:     input.Event,
		Page:      input.Page,
		Data:      data,
		Timestamp: now,
	}
	if meta.UserAgent != "" {
		ua := meta.UserAgent
		row.UserAgent = &ua
	}
	ip := meta.IPAddress
	if ip == "" {
		ip = "unknown"
	}
	row.IPAddress = &ip
	return row
}

// Track stores a single event.
func (s *AnalyticsService) Track(ctx context.Context, input AnalyticsEventInput, meta RequestMeta) (*entity.AnalyticsEvent, error) {
	row := eventFromInput(input, meta, time.Now())
	if err := s.repo.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

// TrackBatch stores 1 to MaxBatchEvents events in one insert and returns
// the created rows plus their count.
func (s *AnalyticsService) TrackBatch(ctx context.Context, inputs []AnalyticsEventInput, meta RequestMeta) ([]*entity.AnalyticsEvent, int64, error) {
	if len(inputs) == 0 || len(inputs) > MaxBatchEvents {
		return nil, 0, apperrors.ErrValidation
	}

	now := time.Now()
	rows := make([]*entity.AnalyticsEvent, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, eventFromInput(input, meta, now))
	}

	created, err := s.repo.CreateBatch(rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, created, nil
}

// ListEvents returns raw events newest-first plus the total matching the
// filter.
func (s *AnalyticsService) ListEvents(filter repository.AnalyticsFilter, limit int) ([]entity.AnalyticsEvent, int64, error) {
	events, err := s.repo.List(filter, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GroupByEvent returns per-event counts, descending.
func (s *AnalyticsService) GroupByEvent(filter repository.AnalyticsFilter, limit int) ([]repository.GroupCount, error) {
	return s.repo.GroupByEvent(filter, limit)
}

// GroupByPage returns per-page counts, descending.
func (s *AnalyticsService) GroupByPage(filter repository.AnalyticsFilter, limit int) ([]repository.GroupCount, error) {
	return s.repo.GroupByPage(filter, limit)
}

// BucketByDay returns daily buckets, newest-first.
func (s *AnalyticsService) BucketByDay(start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	return s.repo.BucketByDay(start, end, limit)
}

// BucketByHour returns hourly buckets, newest-first.
func (s *AnalyticsService) BucketByHour(start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	return s.repo.BucketByHour(start, end, limit)
}

// GrowthPercent compares the current period against the previous one. A
// zero prior period yields 0 rather than dividing by zero; otherwise the
// result is ((current-previous)/previous)*100 rounded to 2 decimals.
func GrowthPercent(current, previous int64) float64 {
	if previous <= 0 {
		return 0
	}
	growth := (float64(current) - float64(previous)) / float64(previous) * 100
	return math.Round(growth*100) / 100
}

// AggregateSources reduces event payloads to the top traffic sources.
// Events without a source label count as "direct".
func AggregateSources(payloads []map[string]interface{}, limit int) []SourceCount {
	counts := map[string]int64{}
	for _, data := range payloads {
		event := entity.AnalyticsEvent{Data: data}
		counts[event.Source()]++
	}

	sources := make([]SourceCount, 0, len(counts))
	for source, count := range counts {
		sources = append(sources, SourceCount{Source: source, Count: count})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Count != sources[j].Count {
			return sources[i].Count > sources[j].Count
		}
		return sources[i].Source < sources[j].Source
	})

	if len(sources) > limit {
		sources = sources[:limit]
	}
	return sources
}

// Dashboard builds the rolling N-day summary.
func (s *AnalyticsService) Dashboard(days int) (*DashboardSummary, error) {
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	startDate := now.AddDate(0, 0, -days)
	previousStart := startDate.AddDate(0, 0, -days)

	totalEvents, err := s.repo.CountSince(startDate)
	if err != nil {
		return nil, err
	}
	uniqueVisitors, err := s.repo.DistinctIPSince(startDate)
	if err != nil {
		return nil, err
	}
	recentActivity, err := s.repo.CountSince(now.Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}

	windowFilter := repository.AnalyticsFilter{StartDate: &startDate}
	topEvents, err := s.repo.GroupByEvent(windowFilter, 10)
	if err != nil {
		return nil, err
	}
	topPages, err := s.repo.GroupByPage(windowFilter, 10)
	if err != nil {
		return nil, err
	}

	var conversions ConversionCounts
	if conversions.Waitlist, err = s.repo.CountEventSince(entity.EventWaitlistSignup, startDate); err != nil {
		return nil, err
	}
	if conversions.Contact, err = s.repo.CountEventSince(entity.EventContactFormSubmit, startDate); err != nil {
		return nil, err
	}
	if conversions.Newsletter, err = s.repo.CountEventSince(entity.EventNewsletterSignup, startDate); err != nil {
		return nil, err
	}
	if conversions.Investment, err = s.repo.CountEventSince(entity.EventInvestmentInquiry, startDate); err != nil {
		return nil, err
	}

	payloads, err := s.repo.PayloadsSince(startDate, trafficSourceSampleSize)
	if err != nil {
		return nil, err
	}
	trafficSources := AggregateSources(payloads, 10)

	previousEvents, err := s.repo.CountBetween(previousStart, startDate)
	if err != nil {
		return nil, err
	}
	previousVisitors, err := s.repo.DistinctIPBetween(previousStart, startDate)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Period: formatDays(days),
		Summary: DashboardSummaryTotals{
			TotalEvents:    totalEvents,
			UniqueVisitors: uniqueVisitors,
			RecentActivity: recentActivity,
			EventGrowth:    GrowthPercent(totalEvents, previousEvents),
			VisitorGrowth:  GrowthPercent(uniqueVisitors, previousVisitors),
		},
		TopEvents:      topEvents,
		TopPages:       topPages,
		Conversions:    conversions,
		TrafficSources: trafficSources,
		GeneratedAt:    now.UTC().Format(time.RFC3339),
	}, nil
}

func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
