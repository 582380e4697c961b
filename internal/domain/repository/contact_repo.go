package repository

import (
	"time"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

// ContactFilter narrows contact-form listings.
type ContactFilter struct {
	Type   string
	Status string
}

// ContactRepository manages contact-form submissions.
type ContactRepository interface {
	Create(form *entity.ContactForm) error
	GetByID(id string) (*entity.ContactForm, error)
	// List returns one page of forms, newest first, plus the total count
	// matching the filter.
	List(filter ContactFilter, limit, offset int) ([]entity.ContactForm, int64, error)
	// UpdateStatus sets status/response and the responded_at marker and
	// returns the updated row.
	UpdateStatus(id, status string, response *string, respondedAt *time.Time) (*entity.ContactForm, error)
	ListAll() ([]entity.ContactForm, error)
}
