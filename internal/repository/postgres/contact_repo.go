package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

// ContactRepo implements repository.ContactRepository.
type ContactRepo struct {
	db *gorm.DB
}

// NewContactRepo creates a new contact-form repository.
func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// Create inserts a new contact form.
func (r *ContactRepo) Create(form *entity.ContactForm) error {
	return r.db.Create(form).Error
}

// GetByID returns the form with the given id.
func (r *ContactRepo) GetByID(id string) (*entity.ContactForm, error) {
	var form entity.ContactForm
	err := r.db.Where("id = ?", id).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// List returns one page of forms, newest first, and the total matching the
// filter.
func (r *ContactRepo) List(filter repository.ContactFilter, limit, offset int) ([]entity.ContactForm, int64, error) {
	query := r.db.Model(&entity.ContactForm{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var forms []entity.ContactForm
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&forms).Error
	if err != nil {
		return nil, 0, err
	}

	return forms, total, nil
}

// UpdateStatus sets status, the responded_at marker and, when supplied,
// the response text, then returns the updated row. A nil response leaves
// the stored reply untouched.
func (r *ContactRepo) UpdateStatus(id, status string, response *string, respondedAt *time.Time) (*entity.ContactForm, error) {
	updates := statusUpdateMap(status, response, respondedAt)

	res := r.db.Model(&entity.ContactForm{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(id)
}

// ListAll returns every form, newest first, for the admin export.
func (r *ContactRepo) ListAll() ([]entity.ContactForm, error) {
	var forms []entity.ContactForm
	err := r.db.Order("created_at DESC").Find(&forms).Error
	return forms, err
}
