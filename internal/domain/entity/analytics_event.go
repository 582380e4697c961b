package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event names recorded by the intake services. Analytics rows are related
// to the other tables only by these conventions.
const (
	EventWaitlistSignup        = "waitlist_signup"
	EventContactFormSubmit     = "contact_form_submit"
	EventNewsletterSignup      = "newsletter_signup"
	EventNewsletterUnsubscribe = "newsletter_unsubscribe"
	EventInvestmentInquiry     = "investment_inquiry"
)

// AnalyticsEvent is one tracked event. Append-only: the core never updates
// or deletes rows.
type AnalyticsEvent struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	Event     string            `gorm:"size:100;not null;index" json:"event"`
	Page      *string           `gorm:"size:500;index" json:"page,omitempty"`
	Data      datatypes.JSONMap `gorm:"type:jsonb" json:"data"`
	UserAgent *string           `gorm:"size:512" json:"userAgent,omitempty"`
	IPAddress *string           `gorm:"size:64" json:"ipAddress,omitempty"`
	Timestamp time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"timestamp"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

func (a *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return nil
}

// Source returns the traffic source recorded in the payload, defaulting
// unlabeled events to "direct".
func (a *AnalyticsEvent) Source() string {
	if a.Data != nil {
		if s, ok := a.Data["source"].(string); ok && s != "" {
			return s
		}
	}
	return "direct"
}
