package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
)

// AnalyticsRepo implements repository.AnalyticsRepository. The table is
// append-only.
type AnalyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepo creates a new analytics repository.
func NewAnalyticsRepo(db *gorm.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// Create inserts a single event.
func (r *AnalyticsRepo) Create(event *entity.AnalyticsEvent) error {
	return r.db.Create(event).Error
}

// CreateBatch inserts up to 100 events in one statement and returns the
// number of rows written.
func (r *AnalyticsRepo) CreateBatch(events []*entity.AnalyticsEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	res := r.db.Create(events)
	return res.RowsAffected, res.Error
}

func (r *AnalyticsRepo) applyFilter(query *gorm.DB, filter repository.AnalyticsFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("timestamp <= ?", *filter.EndDate)
	}
	if filter.Event != "" {
		query = query.Where("event = ?", filter.Event)
	}
	if filter.Page != "" {
		query = query.Where("page = ?", filter.Page)
	}
	return query
}

// List returns raw events, newest first.
func (r *AnalyticsRepo) List(filter repository.AnalyticsFilter, limit int) ([]entity.AnalyticsEvent, error) {
	var events []entity.AnalyticsEvent
	err := r.applyFilter(r.db.Model(&entity.AnalyticsEvent{}), filter).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// Count returns the number of events matching the filter.
func (r *AnalyticsRepo) Count(filter repository.AnalyticsFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.Model(&entity.AnalyticsEvent{}), filter).Count(&count).Error
	return count, err
}

// GroupByEvent returns per-event counts, sorted descending.
func (r *AnalyticsRepo) GroupByEvent(filter repository.AnalyticsFilter, limit int) ([]repository.GroupCount, error) {
	var counts []repository.GroupCount
	err := r.applyFilter(r.db.Model(&entity.AnalyticsEvent{}), filter).
		Select("event AS key, COUNT(*) AS count").
		Group("event").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}

// GroupByPage returns per-page counts, sorted descending. Rows without a
// page are excluded.
func (r *AnalyticsRepo) GroupByPage(filter repository.AnalyticsFilter, limit int) ([]repository.GroupCount, error) {
	var counts []repository.GroupCount
	err := r.applyFilter(r.db.Model(&entity.AnalyticsEvent{}), filter).
		Where("page IS NOT NULL").
		Select("page AS key, COUNT(*) AS count").
		Group("page").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}

// bucketQuery runs the day/hour aggregation. Raw SQL keeps the grouping on
// the database side, the way the original reporting queries did.
func (r *AnalyticsRepo) bucketQuery(truncExpr string, start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	query := r.db.Model(&entity.AnalyticsEvent{}).
		Select(truncExpr + " AS bucket, COUNT(*) AS count, COUNT(DISTINCT ip_address) AS unique_visitors")
	if start != nil {
		query = query.Where("timestamp >= ?", *start)
	}
	if end != nil {
		query = query.Where("timestamp <= ?", *end)
	}

	var buckets []repository.TimeBucket
	err := query.Group("bucket").Order("bucket DESC").Limit(limit).Scan(&buckets).Error
	return buckets, err
}

// BucketByDay returns calendar-day buckets, newest first.
func (r *AnalyticsRepo) BucketByDay(start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	return r.bucketQuery("DATE_TRUNC('day', timestamp)", start, end, limit)
}

// BucketByHour returns hour buckets, newest first.
func (r *AnalyticsRepo) BucketByHour(start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	return r.bucketQuery("DATE_TRUNC('hour', timestamp)", start, end, limit)
}

// CountBetween counts events in [start, end).
func (r *AnalyticsRepo) CountBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.AnalyticsEvent{}).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Count(&count).Error
	return count, err
}

// CountSince counts events from start onward.
func (r *AnalyticsRepo) CountSince(start time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.AnalyticsEvent{}).
		Where("timestamp >= ?", start).
		Count(&count).Error
	return count, err
}

// CountEventSince counts occurrences of one event from start onward.
func (r *AnalyticsRepo) CountEventSince(event string, start time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.AnalyticsEvent{}).
		Where("event = ? AND timestamp >= ?", event, start).
		Count(&count).Error
	return count, err
}

// DistinctIPSince approximates unique visitors by distinct client IP.
func (r *AnalyticsRepo) DistinctIPSince(start time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.AnalyticsEvent{}).
		Where("timestamp >= ?", start).
		Distinct("ip_address").
		Count(&count).Error
	return count, err
}

// DistinctIPBetween counts distinct client IPs in [start, end).
func (r *AnalyticsRepo) DistinctIPBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.AnalyticsEvent{}).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Distinct("ip_address").
		Count(&count).Error
	return count, err
}

// PayloadsSince returns up to limit event payloads for post-query
// aggregation (traffic sources).
func (r *AnalyticsRepo) PayloadsSince(start time.Time, limit int) ([]map[string]interface{}, error) {
	var events []entity.AnalyticsEvent
	err := r.db.Model(&entity.AnalyticsEvent{}).
		Select("data").
		Where("timestamp >= ?", start).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	payloads := make([]map[string]interface{}, 0, len(events))
	for _, ev := range events {
		payloads = append(payloads, ev.Data)
	}
	return payloads, nil
}
