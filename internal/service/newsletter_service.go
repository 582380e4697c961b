package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

const siteURL = "https://xeur.ai"

// NewsletterSubscribeInput is the validated subscription request.
type NewsletterSubscribeInput struct {
	Email       string
	Name        *string
	Source      *string
	Preferences *entity.NewsletterPreferences
}

// NewsletterSubscribeResult reports the outcome of a subscribe call.
// Reactivated is true when an inactive row was revived instead of a new
// one being created.
type NewsletterSubscribeResult struct {
	ID          string                        `json:"id"`
	Email       string                        `json:"email"`
	Reactivated bool                          `json:"reactivated,omitempty"`
	Preferences *entity.NewsletterPreferences `json:"preferences,omitempty"`
}

// NewsletterUpdateInput is the partial preferences update: only non-nil
// fields are written.
type NewsletterUpdateInput struct {
	Preferences *entity.NewsletterPreferences
	Name        *string
	IsActive    *bool
}

// NewsletterStats summarizes the subscription base for list responses.
type NewsletterStats struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// NewsletterService implements the newsletter intake operations.
type NewsletterService struct {
	repo       repository.NewsletterRepository
	notifier   NotificationDispatcher
	tokens     *UnsubscribeTokenManager
	adminEmail string
	log        *logrus.Logger
}

// NewNewsletterService creates the newsletter service.
func NewNewsletterService(repo repository.NewsletterRepository, notifier NotificationDispatcher, tokens *UnsubscribeTokenManager, adminEmail string, log *logrus.Logger) *NewsletterService {
	return &NewsletterService{
		repo:       repo,
		notifier:   notifier,
		tokens:     tokens,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Subscribe creates a subscription, or reactivates an inactive one in
// place. An already-active email fails with ErrConflict. The welcome email
// is only sent on the brand-new path.
func (s *NewsletterService) Subscribe(ctx context.Context, input NewsletterSubscribeInput, meta RequestMeta) (*NewsletterSubscribeResult, error) {
	existing, err := s.repo.GetByEmail(input.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive {
			return nil, apperrors.ErrConflict
		}
		return s.reactivate(ctx, existing, input)
	}

	sub := &entity.NewsletterSubscription{
		Email:    input.Email,
		Name:     input.Name,
		IsActive: true,
		Source:   input.Source,
	}
	if sub.Source == nil {
		website := "website"
		sub.Source = &website
	}
	prefs := entity.DefaultNewsletterPreferences()
	if input.Preferences != nil {
		prefs = *input.Preferences
	}
	if err := sub.SetPreferences(prefs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(sub); err != nil {
		return nil, err
	}

	name := "Creator"
	if sub.Name != nil && *sub.Name != "" {
		name = *sub.Name
	}
	subject, body := NewsletterWelcomeMail(name, s.unsubscribeURL(sub.Email))
	s.notifier.SendEmail(ctx, sub.Email, subject, body)

	s.notifier.TrackEvent(ctx, entity.EventNewsletterSignup, "/newsletter", map[string]interface{}{
		"source":      *sub.Source,
		"preferences": prefs,
	}, meta)

	if s.adminEmail != "" {
		adminName := ""
		if sub.Name != nil {
			adminName = *sub.Name
		}
		subject, body := NewsletterAdminMail(adminName, sub.Email, *sub.Source)
		s.notifier.SendEmail(ctx, s.adminEmail, subject, body)
	}

	return &NewsletterSubscribeResult{
		ID:          sub.ID,
		Email:       sub.Email,
		Preferences: &prefs,
	}, nil
}

// reactivate revives an inactive row, merging the supplied source and
// preferences over the stored ones.
func (s *NewsletterService) reactivate(ctx context.Context, sub *entity.NewsletterSubscription, input NewsletterSubscribeInput) (*NewsletterSubscribeResult, error) {
	sub.IsActive = true
	if input.Source != nil && *input.Source != "" {
		sub.Source = input.Source
	}
	if input.Preferences != nil {
		if err := sub.SetPreferences(*input.Preferences); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(sub); err != nil {
		return nil, err
	}

	prefs := sub.GetPreferences()
	return &NewsletterSubscribeResult{
		ID:          sub.ID,
		Email:       sub.Email,
		Reactivated: true,
		Preferences: &prefs,
	}, nil
}

// unsubscribeURL builds the tokenized unsubscribe link embedded in the
// welcome email.
func (s *NewsletterService) unsubscribeURL(email string) string {
	token, err := s.tokens.Issue(email)
	if err != nil {
		s.log.WithError(err).Warn("failed to issue unsubscribe token")
		return siteURL + "/unsubscribe"
	}
	return fmt.Sprintf("%s/unsubscribe?email=%s&token=%s", siteURL, url.QueryEscape(email), url.QueryEscape(token))
}

// Unsubscribe deactivates the active subscription for the email. When a
// token is supplied it must verify and be bound to the same email. The
// row is kept, only is_active is cleared.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email, token string, meta RequestMeta) error {
	if token != "" {
		subject, err := s.tokens.Verify(token)
		if err != nil || subject != email {
			return apperrors.ErrValidation
		}
	}

	affected, err := s.repo.Deactivate(email)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	subject, body := UnsubscribeConfirmationMail()
	s.notifier.SendEmail(ctx, email, subject, body)

	s.notifier.TrackEvent(ctx, entity.EventNewsletterUnsubscribe, "/unsubscribe", map[string]interface{}{
		"email": email,
	}, meta)

	return nil
}

// UpdatePreferences applies the partial update: only supplied fields are
// overwritten.
func (s *NewsletterService) UpdatePreferences(email string, input NewsletterUpdateInput) (*entity.NewsletterSubscription, error) {
	updates := map[string]interface{}{}
	if input.Preferences != nil {
		sub := entity.NewsletterSubscription{}
		if err := sub.SetPreferences(*input.Preferences); err != nil {
			return nil, err
		}
		updates["preferences"] = sub.Preferences
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	return s.repo.UpdateByEmail(email, updates)
}

// List returns one page of subscriptions plus the active/inactive stats.
func (s *NewsletterService) List(active *bool, page, limit int) ([]entity.NewsletterSubscription, int64, *NewsletterStats, error) {
	offset := (page - 1) * limit
	subs, total, err := s.repo.List(active, limit, offset)
	if err != nil {
		return nil, 0, nil, err
	}

	activeCount, err := s.repo.CountByActive(true)
	if err != nil {
		return nil, 0, nil, err
	}
	inactiveCount, err := s.repo.CountByActive(false)
	if err != nil {
		return nil, 0, nil, err
	}

	return subs, total, &NewsletterStats{Active: activeCount, Inactive: inactiveCount}, nil
}
