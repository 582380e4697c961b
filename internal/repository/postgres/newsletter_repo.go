package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

// NewsletterRepo implements repository.NewsletterRepository.
type NewsletterRepo struct {
	db *gorm.DB
}

// NewNewsletterRepo creates a new newsletter repository.
func NewNewsletterRepo(db *gorm.DB) *NewsletterRepo {
	return &NewsletterRepo{db: db}
}

// Create inserts a new subscription. A duplicate email maps to ErrConflict
// via the unique index.
func (r *NewsletterRepo) Create(sub *entity.NewsletterSubscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// GetByEmail returns the subscription for the given email.
func (r *NewsletterRepo) GetByEmail(email string) (*entity.NewsletterSubscription, error) {
	var sub entity.NewsletterSubscription
	err := r.db.Where("email = ?", email).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Update saves the full subscription row.
func (r *NewsletterRepo) Update(sub *entity.NewsletterSubscription) error {
	sub.UpdatedAt = time.Now()
	return r.db.Save(sub).Error
}

// UpdateByEmail applies a column map and returns the updated row.
func (r *NewsletterRepo) UpdateByEmail(email string, updates map[string]interface{}) (*entity.NewsletterSubscription, error) {
	updates["updated_at"] = time.Now()

	res := r.db.Model(&entity.NewsletterSubscription{}).Where("email = ?", email).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByEmail(email)
}

// Deactivate clears is_active on the active subscription. Rows are never
// deleted.
func (r *NewsletterRepo) Deactivate(email string) (int64, error) {
	res := r.db.Model(&entity.NewsletterSubscription{}).
		Where("email = ? AND is_active = ?", email, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

// List returns one page, newest first. active=nil lists all rows.
func (r *NewsletterRepo) List(active *bool, limit, offset int) ([]entity.NewsletterSubscription, int64, error) {
	query := r.db.Model(&entity.NewsletterSubscription{})
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []entity.NewsletterSubscription
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

// CountByActive counts subscriptions by their active flag.
func (r *NewsletterRepo) CountByActive(active bool) (int64, error) {
	var count int64
	err := r.db.Model(&entity.NewsletterSubscription{}).
		Where("is_active = ?", active).
		Count(&count).Error
	return count, err
}
