package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
)

// WaitlistSignupInput is the validated waitlist submission.
type WaitlistSignupInput struct {
	Email      string
	Name       *string
	GameTypes  string // comma-separated tags
	Experience string
	Source     *string
}

// WaitlistSignupResult is returned after a successful signup.
type WaitlistSignupResult struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Position int64  `json:"position"`
}

// WaitlistStatus is the computed queue standing for one entry.
type WaitlistStatus struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	Position   int64     `json:"position"`
	TotalCount int64     `json:"totalCount"`
	Percentile int       `json:"percentile"`
}

// WaitlistUpdateInput is the allow-listed partial update.
type WaitlistUpdateInput struct {
	Name       *string
	Status     *string
	Experience *string
	GameTypes  *string // comma-separated tags
	Priority   *int
	Source     *string
}

// WaitlistService implements the waitlist intake operations.
type WaitlistService struct {
	repo       repository.WaitlistRepository
	notifier   NotificationDispatcher
	adminEmail string
	log        *logrus.Logger
}

// NewWaitlistService creates the waitlist service. adminEmail may be empty
// to skip the internal notification.
func NewWaitlistService(repo repository.WaitlistRepository, notifier NotificationDispatcher, adminEmail string, log *logrus.Logger) *WaitlistService {
	return &WaitlistService{
		repo:       repo,
		notifier:   notifier,
		adminEmail: adminEmail,
		log:        log,
	}
}

// splitGameTypes splits the comma-separated tag string into trimmed,
// non-empty tags.
func splitGameTypes(csv string) []string {
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// CreateEntry registers a new waitlist signup. A duplicate email fails
// with ErrConflict before any side effect runs.
func (s *WaitlistService) CreateEntry(ctx context.Context, input WaitlistSignupInput, meta RequestMeta) (*WaitlistSignupResult, error) {
	gameTypes := splitGameTypes(input.GameTypes)

	experience := input.Experience
	if experience == "" {
		experience = entity.ExperienceBeginner
	}

	source := "website"
	if input.Source != nil && *input.Source != "" {
		source = *input.Source
	}

	entry := &entity.WaitlistEntry{
		Email:      input.Email,
		Name:       input.Name,
		GameTypes:  pq.StringArray(gameTypes),
		Experience: experience,
		Status:     entity.StatusPending,
		Source:     &source,
		Priority:   0,
	}

	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}

	position, err := s.position(entry)
	if err != nil {
		s.log.WithError(err).Warn("failed to compute waitlist position")
		position = 0
	}

	subject, body := WaitlistConfirmationMail(entry.DisplayName())
	s.notifier.SendEmail(ctx, entry.Email, subject, body)

	if s.adminEmail != "" {
		name := ""
		if entry.Name != nil {
			name = *entry.Name
		}
		subject, body := WaitlistAdminMail(name, entry.Email, gameTypes, experience, source)
		s.notifier.SendEmail(ctx, s.adminEmail, subject, body)
	}

	s.notifier.TrackEvent(ctx, entity.EventWaitlistSignup, "/waitlist", map[string]interface{}{
		"gameTypes":  gameTypes,
		"experience": experience,
		"source":     source,
	}, meta)

	return &WaitlistSignupResult{
		ID:       entry.ID,
		Email:    entry.Email,
		Position: position,
	}, nil
}

// position ranks the entry by (priority desc, created_at asc): the count
// of entries ahead plus one.
func (s *WaitlistService) position(entry *entity.WaitlistEntry) (int64, error) {
	ahead, err := s.repo.CountAhead(entry.Priority, entry.CreatedAt)
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

// GetStatus returns the entry summary with its computed position and
// percentile.
func (s *WaitlistService) GetStatus(email string) (*WaitlistStatus, error) {
	entry, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	position, err := s.position(entry)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}

	percentile := 0
	if total > 0 {
		percentile = int(math.Round(float64(position) / float64(total) * 100))
	}

	return &WaitlistStatus{
		ID:         entry.ID,
		Email:      entry.Email,
		Name:       entry.Name,
		Status:     entry.Status,
		CreatedAt:  entry.CreatedAt,
		Position:   position,
		TotalCount: total,
		Percentile: percentile,
	}, nil
}

// UpdateEntry applies the allow-listed partial update to the entry with
// the given email.
func (s *WaitlistService) UpdateEntry(email string, input WaitlistUpdateInput) (*entity.WaitlistEntry, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Experience != nil {
		updates["experience"] = *input.Experience
	}
	if input.GameTypes != nil {
		updates["game_types"] = pq.StringArray(splitGameTypes(*input.GameTypes))
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}

	return s.repo.UpdateByEmail(email, updates)
}

// ListAll returns every entry in queue order, for the admin export.
func (s *WaitlistService) ListAll() ([]entity.WaitlistEntry, error) {
	return s.repo.ListAll()
}
