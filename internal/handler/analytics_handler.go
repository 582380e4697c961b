package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xeur-ai/landing-api/internal/domain/repository"
	"github.com/xeur-ai/landing-api/internal/handler/dto"
	"github.com/xeur-ai/landing-api/internal/service"
)

// AnalyticsHandler serves event tracking and the reporting endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates the analytics handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Track handles POST /api/analytics, a single event.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req dto.AnalyticsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	event, err := h.analyticsService.Track(c.Request.Context(), service.AnalyticsEventInput{
		Event: req.Event,
		Page:  req.Page,
		Data:  req.Payload(),
	}, requestMeta(c))
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to track event")
		return
	}

	Success(c, gin.H{
		"id":        event.ID,
		"event":     event.Event,
		"timestamp": event.Timestamp,
	}, "Event tracked")
}

// TrackBatch handles PATCH /api/analytics, 1-100 events in one insert.
func (h *AnalyticsHandler) TrackBatch(c *gin.Context) {
	var req dto.AnalyticsBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	inputs := make([]service.AnalyticsEventInput, 0, len(req.Events))
	for i := range req.Events {
		e := &req.Events[i]
		inputs = append(inputs, service.AnalyticsEventInput{
			Event: e.Event,
			Page:  e.Page,
			Data:  e.Payload(),
		})
	}

	rows, created, err := h.analyticsService.TrackBatch(c.Request.Context(), inputs, requestMeta(c))
	if err != nil {
		RespondServiceError(c, err,
			"Batch must contain between 1 and 100 events",
			"Not found",
			"Conflict",
			"Failed to track events")
		return
	}

	Success(c, gin.H{"created": created, "events": rows}, "Events tracked")
}

// Report handles GET /api/analytics. groupBy selects the aggregation:
// event, page, day or hour; without it the raw events are listed.
func (h *AnalyticsHandler) Report(c *gin.Context) {
	start := parseDateParam(c.Query("startDate"))
	end := parseDateParam(c.Query("endDate"))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		limit = 100
	} else if limit > 1000 {
		limit = 1000
	}

	filter := repository.AnalyticsFilter{
		StartDate: start,
		EndDate:   end,
		Event:     c.Query("event"),
		Page:      c.Query("page"),
	}

	switch c.Query("groupBy") {
	case "event":
		groups, err := h.analyticsService.GroupByEvent(filter, limit)
		if err != nil {
			Error(c, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}
		Success(c, gin.H{"groupBy": "event", "groups": groups}, "")
	case "page":
		groups, err := h.analyticsService.GroupByPage(filter, limit)
		if err != nil {
			Error(c, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}
		Success(c, gin.H{"groupBy": "page", "groups": groups}, "")
	case "day":
		buckets, err := h.analyticsService.BucketByDay(start, end, limit)
		if err != nil {
			Error(c, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}
		Success(c, gin.H{"groupBy": "day", "buckets": buckets}, "")
	case "hour":
		buckets, err := h.analyticsService.BucketByHour(start, end, limit)
		if err != nil {
			Error(c, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}
		Success(c, gin.H{"groupBy": "hour", "buckets": buckets}, "")
	case "":
		events, total, err := h.analyticsService.ListEvents(filter, limit)
		if err != nil {
			Error(c, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}
		Success(c, gin.H{
			"events": events,
			"total":  total,
			"filters": gin.H{
				"event":     filter.Event,
				"page":      filter.Page,
				"startDate": filter.StartDate,
				"endDate":   filter.EndDate,
				"limit":     limit,
			},
		}, "")
	default:
		Error(c, http.StatusBadRequest, "groupBy must be one of: event, page, day, hour")
	}
}

// Dashboard handles PUT /api/analytics, the rolling-window summary.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	} else if days > 365 {
		days = 365
	}

	summary, err := h.analyticsService.Dashboard(days)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	Success(c, summary, "")
}

// parseDateParam accepts RFC 3339 timestamps or bare dates.
func parseDateParam(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}
