package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xeur-ai/landing-api/internal/config"
	"github.com/xeur-ai/landing-api/internal/domain/entity"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

func testNotifyConfig() *config.NotifyConfig {
	return &config.NotifyConfig{
		ContactRouting: map[string]string{
			"TECHNICAL":   "support@xeur.ai",
			"SUPPORT":     "support@xeur.ai",
			"PARTNERSHIP": "partnerships@xeur.ai",
			"INVESTMENT":  "investors@xeur.ai",
			"PRESS":       "press@xeur.ai",
		},
		InvestorEmails: []string{"investors@xeur.ai"},
		ThrottleMs:     1,
		DashboardURL:   "https://xeur.ai/admin",
	}
}

func TestContactSubmit_RoutesByType(t *testing.T) {
	repo := new(MockContactRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewContactService(repo, dispatcher, testNotifyConfig(), "noreply@xeur.ai", testLogger())

	repo.On("Create", mock.AnythingOfType("*entity.ContactForm")).Run(func(args mock.Arguments) {
		form := args.Get(0).(*entity.ContactForm)
		form.ID = "cf-1"
	}).Return(nil)

	result, err := svc.Submit(context.Background(), ContactSubmitInput{
		Name:    "Sam",
		Email:   "sam@example.com",
		Subject: "Crash on export",
		Message: "The editor crashes when I export.",
		Type:    entity.ContactTypeTechnical,
	}, RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, "cf-1", result.ID)
	assert.Equal(t, entity.StatusPending, result.Status)

	require.Len(t, dispatcher.emails, 2)
	assert.Equal(t, "sam@example.com", dispatcher.emails[0].To)
	assert.Equal(t, "support@xeur.ai", dispatcher.emails[1].To)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, entity.EventContactFormSubmit, dispatcher.events[0].Event)
	assert.Equal(t, len("The editor crashes when I export."), dispatcher.events[0].Data["messageLength"])
}

func TestContactSubmit_DefaultsToGeneralRoute(t *testing.T) {
	repo := new(MockContactRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewContactService(repo, dispatcher, testNotifyConfig(), "noreply@xeur.ai", testLogger())

	repo.On("Create", mock.Anything).Return(nil)

	result, err := svc.Submit(context.Background(), ContactSubmitInput{
		Name:    "Sam",
		Email:   "sam@example.com",
		Subject: "Hello",
		Message: "Just saying hello to the team.",
	}, RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, entity.ContactTypeGeneral, result.Type)
	// No GENERAL route configured, so the team copy falls back to the
	// from-address.
	require.Len(t, dispatcher.emails, 2)
	assert.Equal(t, "noreply@xeur.ai", dispatcher.emails[1].To)
}

func TestContactUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewContactService(new(MockContactRepo), &fakeDispatcher{}, testNotifyConfig(), "noreply@xeur.ai", testLogger())

	_, err := svc.UpdateStatus(context.Background(), "cf-1", "APPROVED", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestContactUpdateStatus_RespondedSetsMarkerAndMails(t *testing.T) {
	repo := new(MockContactRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewContactService(repo, dispatcher, testNotifyConfig(), "noreply@xeur.ai", testLogger())

	response := "We shipped a fix in 0.9.2."
	form := &entity.ContactForm{ID: "cf-1", Name: "Sam", Email: "sam@example.com", Subject: "Crash", Status: entity.StatusResponded}
	repo.On("UpdateStatus", "cf-1", entity.StatusResponded, &response, mock.MatchedBy(func(t *time.Time) bool {
		return t != nil
	})).Return(form, nil)

	updated, err := svc.UpdateStatus(context.Background(), "cf-1", entity.StatusResponded, &response)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResponded, updated.Status)

	require.Len(t, dispatcher.emails, 1)
	assert.Equal(t, "sam@example.com", dispatcher.emails[0].To)
	assert.Contains(t, dispatcher.emails[0].Body, "We shipped a fix in 0.9.2.")
}

func TestContactUpdateStatus_ArchivedSkipsMarkerAndMail(t *testing.T) {
	repo := new(MockContactRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewContactService(repo, dispatcher, testNotifyConfig(), "noreply@xeur.ai", testLogger())

	form := &entity.ContactForm{ID: "cf-1", Status: entity.StatusArchived}
	repo.On("UpdateStatus", "cf-1", entity.StatusArchived, (*string)(nil), (*time.Time)(nil)).Return(form, nil)

	_, err := svc.UpdateStatus(context.Background(), "cf-1", entity.StatusArchived, nil)
	require.NoError(t, err)
	assert.Empty(t, dispatcher.emails)
}

func TestContactUpdateStatus_NotFound(t *testing.T) {
	repo := new(MockContactRepo)
	svc := NewContactService(repo, &fakeDispatcher{}, testNotifyConfig(), "noreply@xeur.ai", testLogger())

	repo.On("UpdateStatus", "missing", entity.StatusArchived, (*string)(nil), (*time.Time)(nil)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.UpdateStatus(context.Background(), "missing", entity.StatusArchived, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
