package repository

import (
	"time"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

// AnalyticsFilter narrows raw event listings and grouped counts.
type AnalyticsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Event     string
	Page      string
}

// GroupCount is one bucket of a group-by-event or group-by-page query.
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// TimeBucket is one calendar-day or hour bucket. UniqueVisitors is the
// distinct-client-IP count and is always <= Count.
type TimeBucket struct {
	Bucket         time.Time `json:"bucket"`
	Count          int64     `json:"count"`
	UniqueVisitors int64     `json:"uniqueVisitors"`
}

// AnalyticsRepository stores and aggregates analytics events. The table is
// append-only; nothing here updates or deletes rows.
type AnalyticsRepository interface {
	Create(event *entity.AnalyticsEvent) error
	CreateBatch(events []*entity.AnalyticsEvent) (int64, error)
	List(filter AnalyticsFilter, limit int) ([]entity.AnalyticsEvent, error)
	Count(filter AnalyticsFilter) (int64, error)
	// GroupByEvent / GroupByPage return per-group counts sorted descending.
	// GroupByPage excludes rows with a null page.
	GroupByEvent(filter AnalyticsFilter, limit int) ([]GroupCount, error)
	GroupByPage(filter AnalyticsFilter, limit int) ([]GroupCount, error)
	// BucketByDay / BucketByHour return buckets sorted newest-first.
	BucketByDay(start, end *time.Time, limit int) ([]TimeBucket, error)
	BucketByHour(start, end *time.Time, limit int) ([]TimeBucket, error)
	CountBetween(start, end time.Time) (int64, error)
	CountSince(start time.Time) (int64, error)
	CountEventSince(event string, start time.Time) (int64, error)
	DistinctIPSince(start time.Time) (int64, error)
	DistinctIPBetween(start, end time.Time) (int64, error)
	// PayloadsSince returns up to limit data payloads for traffic-source
	// aggregation.
	PayloadsSince(start time.Time, limit int) ([]map[string]interface{}, error)
}
