package service

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	"github.com/xeur-ai/landing-api/internal/domain/repository"
)

func strPtr(s string) *string { return &s }

// MockWaitlistRepo implements repository.WaitlistRepository.
type MockWaitlistRepo struct {
	mock.Mock
}

func (m *MockWaitlistRepo) Create(entry *entity.WaitlistEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockWaitlistRepo) GetByEmail(email string) (*entity.WaitlistEntry, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepo) UpdateByEmail(email string, updates map[string]interface{}) (*entity.WaitlistEntry, error) {
	args := m.Called(email, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepo) CountAhead(priority int, createdAt time.Time) (int64, error) {
	args := m.Called(priority, createdAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWaitlistRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWaitlistRepo) ListAll() ([]entity.WaitlistEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WaitlistEntry), args.Error(1)
}

// MockContactRepo implements repository.ContactRepository.
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(form *entity.ContactForm) error {
	args := m.Called(form)
	return args.Error(0)
}

func (m *MockContactRepo) GetByID(id string) (*entity.ContactForm, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactForm), args.Error(1)
}

func (m *MockContactRepo) List(filter repository.ContactFilter, limit, offset int) ([]entity.ContactForm, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ContactForm), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepo) UpdateStatus(id, status string, response *string, respondedAt *time.Time) (*entity.ContactForm, error) {
	args := m.Called(id, status, response, respondedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactForm), args.Error(1)
}

func (m *MockContactRepo) ListAll() ([]entity.ContactForm, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ContactForm), args.Error(1)
}

// MockNewsletterRepo implements repository.NewsletterRepository.
type MockNewsletterRepo struct {
	mock.Mock
}

func (m *MockNewsletterRepo) Create(sub *entity.NewsletterSubscription) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockNewsletterRepo) GetByEmail(email string) (*entity.NewsletterSubscription, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NewsletterSubscription), args.Error(1)
}

func (m *MockNewsletterRepo) Update(sub *entity.NewsletterSubscription) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockNewsletterRepo) UpdateByEmail(email string, updates map[string]interface{}) (*entity.NewsletterSubscription, error) {
	args := m.Called(email, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NewsletterSubscription), args.Error(1)
}

func (m *MockNewsletterRepo) Deactivate(email string) (int64, error) {
	args := m.Called(email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNewsletterRepo) List(active *bool, limit, offset int) ([]entity.NewsletterSubscription, int64, error) {
	args := m.Called(active, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.NewsletterSubscription), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsletterRepo) CountByActive(active bool) (int64, error) {
	args := m.Called(active)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvestmentRepo implements repository.InvestmentRepository.
type MockInvestmentRepo struct {
	mock.Mock
}

func (m *MockInvestmentRepo) Create(inquiry *entity.InvestmentInquiry) error {
	args := m.Called(inquiry)
	return args.Error(0)
}

func (m *MockInvestmentRepo) GetByID(id string) (*entity.InvestmentInquiry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InvestmentInquiry), args.Error(1)
}

func (m *MockInvestmentRepo) List(filter repository.InvestmentFilter, limit, offset int) ([]entity.InvestmentInquiry, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.InvestmentInquiry), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestmentRepo) UpdateStatus(id, status string, response *string, respondedAt *time.Time) (*entity.InvestmentInquiry, error) {
	args := m.Called(id, status, response, respondedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InvestmentInquiry), args.Error(1)
}

func (m *MockInvestmentRepo) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvestmentRepo) CountByFundType() ([]repository.FundTypeCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.FundTypeCount), args.Error(1)
}

// MockAnalyticsRepo implements repository.AnalyticsRepository.
type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) Create(event *entity.AnalyticsEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockAnalyticsRepo) CreateBatch(events []*entity.AnalyticsEvent) (int64, error) {
	args := m.Called(events)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) List(filter repository.AnalyticsFilter, limit int) ([]entity.AnalyticsEvent, error) {
	args := m.Called(filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AnalyticsEvent), args.Error(1)
}

func (m *MockAnalyticsRepo) Count(filter repository.AnalyticsFilter) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) GroupByEvent(filter repository.AnalyticsFilter, limit int) ([]repository.GroupCount, error) {
	args := m.Called(filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.GroupCount), args.Error(1)
}

func (m *MockAnalyticsRepo) GroupByPage(filter repository.AnalyticsFilter, limit int) ([]repository.GroupCount, error) {
	args := m.Called(filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.GroupCount), args.Error(1)
}

func (m *MockAnalyticsRepo) BucketByDay(start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	args := m.Called(start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TimeBucket), args.Error(1)
}

func (m *MockAnalyticsRepo) BucketByHour(start, end *time.Time, limit int) ([]repository.TimeBucket, error) {
	args := m.Called(start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TimeBucket), args.Error(1)
}

func (m *MockAnalyticsRepo) CountBetween(start, end time.Time) (int64, error) {
	args := m.Called(start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) CountSince(start time.Time) (int64, error) {
	args := m.Called(start)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) CountEventSince(event string, start time.Time) (int64, error) {
	args := m.Called(event, start)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) DistinctIPSince(start time.Time) (int64, error) {
	args := m.Called(start)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) DistinctIPBetween(start, end time.Time) (int64, error) {
	args := m.Called(start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) PayloadsSince(start time.Time, limit int) ([]map[string]interface{}, error) {
	args := m.Called(start, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

// sentEmail is one recorded SendEmail call.
type sentEmail struct {
	To      string
	Subject string
	Body    string
}

// trackedEvent is one recorded TrackEvent call.
type trackedEvent struct {
	Event string
	Page  string
	Data  map[string]interface{}
	Meta  RequestMeta
}

// fakeDispatcher records side-effect calls instead of performing them.
// Dispatcher methods return nothing, so a recorder reads better in
// assertions than an expectation-based mock.
type fakeDispatcher struct {
	emails []sentEmail
	slack  []*SlackMessage
	events []trackedEvent
}

func (f *fakeDispatcher) SendEmail(ctx context.Context, to, subject, html string) {
	f.emails = append(f.emails, sentEmail{To: to, Subject: subject, Body: html})
}

func (f *fakeDispatcher) PostSlack(ctx context.Context, msg *SlackMessage) {
	f.slack = append(f.slack, msg)
}

func (f *fakeDispatcher) TrackEvent(ctx context.Context, event, page string, data map[string]interface{}, meta RequestMeta) {
	f.events = append(f.events, trackedEvent{Event: event, Page: page, Data: data, Meta: meta})
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
