package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Newsletter frequencies.
const (
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// DefaultNewsletterTopics are applied when a subscriber supplies no
// preferences.
var DefaultNewsletterTopics = []string{"platform-updates", "industry-news"}

// NewsletterPreferences is the structured payload stored in the
// preferences JSONB column.
type NewsletterPreferences struct {
	Frequency string   `json:"frequency"`
	Topics    []string `json:"topics"`
}

// DefaultNewsletterPreferences returns the monthly/default-topics payload.
func DefaultNewsletterPreferences() NewsletterPreferences {
	return NewsletterPreferences{
		Frequency: FrequencyMonthly,
		Topics:    DefaultNewsletterTopics,
	}
}

// NewsletterSubscription is one newsletter signup. At most one row exists
// per email; unsubscribing deactivates the row, it is never deleted.
type NewsletterSubscription struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name        *string        `gorm:"size:100" json:"name,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	Preferences datatypes.JSON `gorm:"type:jsonb" json:"preferences"`
	Source      *string        `gorm:"size:100" json:"source,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}

func (n *NewsletterSubscription) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if len(n.Preferences) == 0 {
		return n.SetPreferences(DefaultNewsletterPreferences())
	}
	return nil
}

// SetPreferences marshals the structured preferences into the JSONB column.
func (n *NewsletterSubscription) SetPreferences(p NewsletterPreferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	n.Preferences = datatypes.JSON(raw)
	return nil
}

// GetPreferences unmarshals the stored preferences, returning defaults when
// the column is empty or unreadable.
func (n *NewsletterSubscription) GetPreferences() NewsletterPreferences {
	if len(n.Preferences) == 0 {
		return DefaultNewsletterPreferences()
	}
	var p NewsletterPreferences
	if err := json.Unmarshal(n.Preferences, &p); err != nil {
		return DefaultNewsletterPreferences()
	}
	return p
}
