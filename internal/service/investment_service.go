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

// InvestmentSubmitInput is the validated investment inquiry.
type InvestmentSubmitInput struct {
	Name           string
	Email          string
	Company        *string
	Position       *string
	InvestmentSize *string
	Message        string
	FundType       *string
	Timeline       *string
}

// InvestmentSubmitResult is returned after a successful submission.
type InvestmentSubmitResult struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Company *string `json:"company,omitempty"`
}

// InvestmentStats summarizes inquiries for list responses.
type InvestmentStats struct {
	Pending    int64                      `json:"pending"`
	Responded  int64                      `json:"responded"`
	ByFundType []repository.FundTypeCount `json:"byFundType"`
}

// InvestmentService implements the investment-inquiry intake operations.
type InvestmentService struct {
	repo     repository.InvestmentRepository
	notifier NotificationDispatcher
	notify   *config.NotifyConfig
	// throttle spaces the sequential investor fan-out to stay under the
	// mail provider's burst limit. Not a correctness mechanism.
	throttle time.Duration
	log      *logrus.Logger
}

// NewInvestmentService creates the investment service.
func NewInvestmentService(repo repository.InvestmentRepository, notifier NotificationDispatcher, notify *config.NotifyConfig, log *logrus.Logger) *InvestmentService {
	throttle := time.Duration(notify.ThrottleMs) * time.Millisecond
	if throttle <= 0 {
		throttle = 100 * time.Millisecond
	}
	return &InvestmentService{
		repo:     repo,
		notifier: notifier,
		notify:   notify,
		throttle: throttle,
		log:      log,
	}
}

// Submit persists an investment inquiry and fans out the confirmation, the
// investor-relations notifications, the Slack message and the analytics
// event.
func (s *InvestmentService) Submit(ctx context.Context, input InvestmentSubmitInput, meta RequestMeta) (*InvestmentSubmitResult, error) {
	inquiry := &entity.InvestmentInquiry{
		Name:           input.Name,
		Email:          input.Email,
		Company:        input.Company,
		Position:       input.Position,
		InvestmentSize: input.InvestmentSize,
		Message:        input.Message,
		FundType:       input.FundType,
		Timeline:       input.Timeline,
		Status:         entity.StatusPending,
	}

	if err := s.repo.Create(inquiry); err != nil {
		return nil, err
	}

	subject, body := InvestmentConfirmationMail(inquiry.Name, inquiry.CompanyName())
	s.notifier.SendEmail(ctx, inquiry.Email, subject, body)

	subject, body = InvestmentTeamMail(inquiry, s.notify.DashboardURL)
	for i, addr := range s.notify.InvestorEmails {
		if addr == "" {
			continue
		}
		if i > 0 {
			time.Sleep(s.throttle)
		}
		s.notifier.SendEmail(ctx, addr, subject, body)
	}

	s.notifier.PostSlack(ctx, BuildInvestmentSlackMessage(inquiry, s.notify.DashboardURL))

	s.notifier.TrackEvent(ctx, entity.EventInvestmentInquiry, "/investment", map[string]interface{}{
		"company":        orPtr(input.Company, ""),
		"fundType":       orPtr(input.FundType, ""),
		"investmentSize": orPtr(input.InvestmentSize, ""),
		"timeline":       orPtr(input.Timeline, ""),
		"messageLength":  len(input.Message),
	}, meta)

	return &InvestmentSubmitResult{
		ID:      inquiry.ID,
		Status:  inquiry.Status,
		Company: inquiry.Company,
	}, nil
}

// List returns one page of inquiries plus the status/fund-type stats.
func (s *InvestmentService) List(filter repository.InvestmentFilter, page, limit int) ([]entity.InvestmentInquiry, int64, *InvestmentStats, error) {
	offset := (page - 1) * limit
	inquiries, total, err := s.repo.List(filter, limit, offset)
	if err != nil {
		return nil, 0, nil, err
	}

	pending, err := s.repo.CountByStatus(entity.StatusPending)
	if err != nil {
		return nil, 0, nil, err
	}
	responded, err := s.repo.CountByStatus(entity.StatusResponded)
	if err != nil {
		return nil, 0, nil, err
	}
	byFundType, err := s.repo.CountByFundType()
	if err != nil {
		return nil, 0, nil, err
	}

	return inquiries, total, &InvestmentStats{
		Pending:    pending,
		Responded:  responded,
		ByFundType: byFundType,
	}, nil
}

// UpdateStatus mirrors the contact-form status update, with the
// investment response template.
func (s *InvestmentService) UpdateStatus(ctx context.Context, id, status string, response *string) (*entity.InvestmentInquiry, error) {
	if !allowedResponseStatuses[status] {
		return nil, apperrors.ErrValidation
	}

	var respondedAt *time.Time
	if status == entity.StatusResponded {
		now := time.Now()
		respondedAt = &now
	}

	inquiry, err := s.repo.UpdateStatus(id, status, response, respondedAt)
	if err != nil {
		return nil, err
	}

	if status == entity.StatusResponded && response != nil && *response != "" {
		subject, body := InvestmentResponseMail(inquiry, *response)
		s.notifier.SendEmail(ctx, inquiry.Email, subject, body)
	}

	return inquiry, nil
}
