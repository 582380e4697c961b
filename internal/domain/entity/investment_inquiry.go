package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvestmentInquiry is one investor-relations inquiry.
type InvestmentInquiry struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:255;not null;index" json:"email"`
	Company        *string    `gorm:"size:200" json:"company,omitempty"`
	Position       *string    `gorm:"size:100" json:"position,omitempty"`
	InvestmentSize *string    `gorm:"size:50" json:"investmentSize,omitempty"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	FundType       *string    `gorm:"size:50" json:"fundType,omitempty"`
	Timeline       *string    `gorm:"size:50" json:"timeline,omitempty"`
	Status         string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Response       *string    `gorm:"type:text" json:"response,omitempty"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (InvestmentInquiry) TableName() string {
	return "investment_inquiries"
}

func (i *InvestmentInquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
	return nil
}

// CompanyName is used in email copy when no company was provided.
func (i *InvestmentInquiry) CompanyName() string {
	if i.Company != nil && *i.Company != "" {
		return *i.Company
	}
	return "your organization"
}
