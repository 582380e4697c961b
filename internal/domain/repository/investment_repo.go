package repository

import (
	"time"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

// InvestmentFilter narrows investment-inquiry listings.
type InvestmentFilter struct {
	Status   string
	FundType string
}

// FundTypeCount is one bucket of the by-fund-type stats.
type FundTypeCount struct {
	FundType string `json:"fundType"`
	Count    int64  `json:"count"`
}

// InvestmentRepository manages investment inquiries.
type InvestmentRepository interface {
	Create(inquiry *entity.InvestmentInquiry) error
	GetByID(id string) (*entity.InvestmentInquiry, error)
	List(filter InvestmentFilter, limit, offset int) ([]entity.InvestmentInquiry, int64, error)
	UpdateStatus(id, status string, response *string, respondedAt *time.Time) (*entity.InvestmentInquiry, error)
	CountByStatus(status string) (int64, error)
	CountByFundType() ([]FundTypeCount, error)
}
