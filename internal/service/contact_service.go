package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xeur-ai/landing-api/internal/config"
	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

// ContactSubmitInput is the validated contact-form submission.
type ContactSubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	Type    string
}

// ContactSubmitResult is returned after a successful submission.
type ContactSubmitResult struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// allowedResponseStatuses are the statuses a PATCH may set on contact
// forms and investment inquiries.
var allowedResponseStatuses = map[string]bool{
	entity.StatusPending:   true,
	entity.StatusResponded: true,
	entity.StatusArchived:  true,
}

// ContactService implements the contact-form intake operations.
type ContactService struct {
	repo     repository.ContactRepository
	notifier NotificationDispatcher
	notify   *config.NotifyConfig
	from     string
	log      *logrus.Logger
}

// NewContactService creates the contact service.
func NewContactService(repo repository.ContactRepository, notifier NotificationDispatcher, notify *config.NotifyConfig, from string, log *logrus.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		notify:   notify,
		from:     from,
		log:      log,
	}
}

// Submit persists a contact form and fans out the confirmation, the routed
// team notification and the analytics event.
func (s *ContactService) Submit(ctx context.Context, input ContactSubmitInput, meta RequestMeta) (*ContactSubmitResult, error) {
	contactType := input.Type
	if contactType == "" {
		contactType = entity.ContactTypeGeneral
	}

	form := &entity.ContactForm{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Type:    contactType,
		Status:  entity.StatusPending,
	}

	if err := s.repo.Create(form); err != nil {
		return nil, err
	}

	subject, body := ContactConfirmationMail(form.Name, form.Type)
	s.notifier.SendEmail(ctx, form.Email, subject, body)

	teamEmail := s.notify.TeamEmail(form.Type, s.from)
	subject, body = ContactTeamMail(form, s.notify.DashboardURL)
	s.notifier.SendEmail(ctx, teamEmail, subject, body)

	s.notifier.TrackEvent(ctx, entity.EventContactFormSubmit, "/contact", map[string]interface{}{
		"type":          form.Type,
		"subject":       form.Subject,
		"messageLength": len(form.Message),
	}, meta)

	return &ContactSubmitResult{
		ID:     form.ID,
		Type:   form.Type,
		Status: form.Status,
	}, nil
}

// List returns one page of contact forms.
func (s *ContactService) List(filter repository.ContactFilter, page, limit int) ([]entity.ContactForm, int64, error) {
	offset := (page - 1) * limit
	return s.repo.List(filter, limit, offset)
}

// UpdateStatus updates the form status. responded_at is set exactly when
// the status becomes RESPONDED; when a response text is supplied on that
// path, a response email is sent to the stored submitter address.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string, response *string) (*entity.ContactForm, error) {
	if !allowedResponseStatuses[status] {
		return nil, apperrors.ErrValidation
	}

	var respondedAt *time.Time
	if status == entity.StatusResponded {
		now := time.Now()
		respondedAt = &now
	}

	form, err := s.repo.UpdateStatus(id, status, response, respondedAt)
	if err != nil {
		return nil, err
	}

	if status == entity.StatusResponded && response != nil && *response != "" {
		subject, body := ContactResponseMail(form, *response)
		s.notifier.SendEmail(ctx, form.Email, subject, body)
	}

	return form, nil
}

// ListAll returns every form for the admin export.
func (s *ContactService) ListAll() ([]entity.ContactForm, error) {
	return s.repo.ListAll()
}
