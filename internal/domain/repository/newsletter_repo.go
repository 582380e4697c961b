package repository

import "github.com/xeur-ai/landing-api/internal/domain/entity"

// NewsletterRepository manages newsletter subscriptions. Rows are
// deactivated on unsubscribe, never deleted.
type NewsletterRepository interface {
	Create(sub *entity.NewsletterSubscription) error
	GetByEmail(email string) (*entity.NewsletterSubscription, error)
	Update(sub *entity.NewsletterSubscription) error
	// UpdateByEmail applies a column map and returns the updated row.
	UpdateByEmail(email string, updates map[string]interface{}) (*entity.NewsletterSubscription, error)
	// Deactivate clears is_active on the active subscription for the email
	// and reports how many rows changed (0 means not found or already
	// inactive).
	Deactivate(email string) (int64, error)
	// List returns one page, newest first. active=nil lists all rows.
	List(active *bool, limit, offset int) ([]entity.NewsletterSubscription, int64, error)
	CountByActive(active bool) (int64, error)
}
