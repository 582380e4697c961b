package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Experience levels accepted on waitlist signup.
const (
	ExperienceBeginner     = "BEGINNER"
	ExperienceIntermediate = "INTERMEDIATE"
	ExperienceAdvanced     = "ADVANCED"
	ExperienceProfessional = "PROFESSIONAL"
)

// Record statuses shared by waitlist entries, contact forms and investment
// inquiries.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusResponded = "RESPONDED"
	StatusArchived  = "ARCHIVED"
)

// WaitlistEntry is one alpha-waitlist signup. Email is globally unique;
// queue position is derived from (priority desc, created_at asc) and never
// stored.
type WaitlistEntry struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name       *string        `gorm:"size:100" json:"name,omitempty"`
	GameTypes  pq.StringArray `gorm:"type:text[]" json:"gameTypes"`
	Experience string         `gorm:"size:20;not null;default:'BEGINNER'" json:"experience"`
	Status     string         `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Source     *string        `gorm:"size:100" json:"source,omitempty"`
	Priority   int            `gorm:"not null;default:0" json:"priority"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}

func (w *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// DisplayName is used in salutations when the subscriber left no name.
func (w *WaitlistEntry) DisplayName() string {
	if w.Name != nil && *w.Name != "" {
		return *w.Name
	}
	return "Creator"
}
