package repository

import (
	"time"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

// WaitlistRepository manages waitlist entries.
type WaitlistRepository interface {
	Create(entry *entity.WaitlistEntry) error
	GetByEmail(email string) (*entity.WaitlistEntry, error)
	// UpdateByEmail applies a column map to the entry with the given email
	// and returns the updated row.
	UpdateByEmail(email string, updates map[string]interface{}) (*entity.WaitlistEntry, error)
	// CountAhead counts entries ranked ahead of an entry with the given
	// priority and creation time: higher priority, or equal priority and
	// earlier creation. Queue position is this count + 1.
	CountAhead(priority int, createdAt time.Time) (int64, error)
	Count() (int64, error)
	ListAll() ([]entity.WaitlistEntry, error)
}
