package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

// InvestmentRepo implements repository.InvestmentRepository.
type InvestmentRepo struct {
	db *gorm.DB
}

// NewInvestmentRepo creates a new investment-inquiry repository.
func NewInvestmentRepo(db *gorm.DB) *InvestmentRepo {
	return &InvestmentRepo{db: db}
}

// Create inserts a new inquiry.
func (r *InvestmentRepo) Create(inquiry *entity.InvestmentInquiry) error {
	return r.db.Create(inquiry).Error
}

// GetByID returns the inquiry with the given id.
func (r *InvestmentRepo) GetByID(id string) (*entity.InvestmentInquiry, error) {
	var inquiry entity.InvestmentInquiry
	err := r.db.Where("id = ?", id).First(&inquiry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

// List returns one page of inquiries, newest first, and the total matching
// the filter.
func (r *InvestmentRepo) List(filter repository.InvestmentFilter, limit, offset int) ([]entity.InvestmentInquiry, int64, error) {
	query := r.db.Model(&entity.InvestmentInquiry{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FundType != "" {
		query = query.Where("fund_type = ?", filter.FundType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inquiries []entity.InvestmentInquiry
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&inquiries).Error
	if err != nil {
		return nil, 0, err
	}

	return inquiries, total, nil
}

// UpdateStatus sets status, the responded_at marker and, when supplied,
// the response text, then returns the updated row. A nil response leaves
// the stored reply untouched.
func (r *InvestmentRepo) UpdateStatus(id, status string, response *string, respondedAt *time.Time) (*entity.InvestmentInquiry, error) {
	updates := statusUpdateMap(status, response, respondedAt)

	res := r.db.Model(&entity.InvestmentInquiry{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(id)
}

// CountByStatus counts inquiries with the given status.
func (r *InvestmentRepo) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.InvestmentInquiry{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByFundType counts inquiries per fund type.
func (r *InvestmentRepo) CountByFundType() ([]repository.FundTypeCount, error) {
	var counts []repository.FundTypeCount
	err := r.db.Model(&entity.InvestmentInquiry{}).
		Select("COALESCE(fund_type, 'Unspecified') AS fund_type, COUNT(*) AS count").
		Group("fund_type").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}
