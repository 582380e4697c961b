package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

// WaitlistRepo implements repository.WaitlistRepository.
type WaitlistRepo struct {
	db *gorm.DB
}

// NewWaitlistRepo creates a new waitlist repository.
func NewWaitlistRepo(db *gorm.DB) *WaitlistRepo {
	return &WaitlistRepo{db: db}
}

// Create inserts a new waitlist entry. A duplicate email maps to
// ErrConflict via the unique index.
func (r *WaitlistRepo) Create(entry *entity.WaitlistEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// GetByEmail returns the entry with the given email (case-sensitive match).
func (r *WaitlistRepo) GetByEmail(email string) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	err := r.db.Where("email = ?", email).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// UpdateByEmail applies a column map to the entry and returns the updated
// row.
func (r *WaitlistRepo) UpdateByEmail(email string, updates map[string]interface{}) (*entity.WaitlistEntry, error) {
	updates["updated_at"] = time.Now()

	res := r.db.Model(&entity.WaitlistEntry{}).Where("email = ?", email).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByEmail(email)
}

// CountAhead counts entries ranked ahead: strictly higher priority, or
// equal priority with an earlier creation time.
func (r *WaitlistRepo) CountAhead(priority int, createdAt time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.WaitlistEntry{}).
		Where("priority > ? OR (priority = ? AND created_at < ?)", priority, priority, createdAt).
		Count(&count).Error
	return count, err
}

// Count returns the total number of waitlist entries.
func (r *WaitlistRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.WaitlistEntry{}).Count(&count).Error
	return count, err
}

// ListAll returns every entry in queue order, for the admin export.
func (r *WaitlistRepo) ListAll() ([]entity.WaitlistEntry, error) {
	var entries []entity.WaitlistEntry
	err := r.db.Order("priority DESC, created_at ASC").Find(&entries).Error
	return entries, err
}
