package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact inquiry types.
const (
	ContactTypeGeneral     = "GENERAL"
	ContactTypeTechnical   = "TECHNICAL"
	ContactTypePartnership = "PARTNERSHIP"
	ContactTypeInvestment  = "INVESTMENT"
	ContactTypePress       = "PRESS"
	ContactTypeSupport     = "SUPPORT"
)

// ContactForm is one contact-form submission. Rows are only ever mutated
// through the status-update operation.
type ContactForm struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:255;not null;index" json:"email"`
	Subject     string     `gorm:"size:200;not null" json:"subject"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	Type        string     `gorm:"size:20;not null;default:'GENERAL'" json:"type"`
	Status      string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Response    *string    `gorm:"type:text" json:"response,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (ContactForm) TableName() string {
	return "contact_forms"
}

func (c *ContactForm) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return nil
}
