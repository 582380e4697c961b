package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
	apperrors "github.com/xeur-ai/landing-api/internal/pkg/errors"
)

func TestSplitGameTypes(t *testing.T) {
	assert.Equal(t, []string{"RPG", "Puzzle"}, splitGameTypes("RPG, Puzzle"))
	assert.Equal(t, []string{"RPG"}, splitGameTypes("RPG,, ,"))
	assert.Empty(t, splitGameTypes("  "))
}

func TestCreateEntry_Success(t *testing.T) {
	repo := new(MockWaitlistRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewWaitlistService(repo, dispatcher, "admin@xeur.ai", testLogger())

	repo.On("Create", mock.AnythingOfType("*entity.WaitlistEntry")).Run(func(args mock.Arguments) {
		entry := args.Get(0).(*entity.WaitlistEntry)
		entry.ID = "entry-1"
	}).Return(nil)
	repo.On("CountAhead", 0, mock.AnythingOfType("time.Time")).Return(int64(4), nil)

	result, err := svc.CreateEntry(context.Background(), WaitlistSignupInput{
		Email:     "dev@example.com",
		Name:      strPtr("Dana"),
		GameTypes: "RPG, Puzzle",
	}, RequestMeta{IPAddress: "1.2.3.4"})

	require.NoError(t, err)
	assert.Equal(t, "entry-1", result.ID)
	assert.Equal(t, int64(5), result.Position)

	// Confirmation to the signup, notification to the admin.
	require.Len(t, dispatcher.emails, 2)
	assert.Equal(t, "dev@example.com", dispatcher.emails[0].To)
	assert.Contains(t, dispatcher.emails[0].Body, "Dana")
	assert.Equal(t, "admin@xeur.ai", dispatcher.emails[1].To)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, entity.EventWaitlistSignup, dispatcher.events[0].Event)
	assert.Equal(t, "BEGINNER", dispatcher.events[0].Data["experience"])
	assert.Equal(t, "website", dispatcher.events[0].Data["source"])
}

func TestCreateEntry_DuplicateEmailSkipsSideEffects(t *testing.T) {
	repo := new(MockWaitlistRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewWaitlistService(repo, dispatcher, "admin@xeur.ai", testLogger())

	repo.On("Create", mock.Anything).Return(apperrors.ErrConflict)

	_, err := svc.CreateEntry(context.Background(), WaitlistSignupInput{
		Email:     "dup@example.com",
		GameTypes: "RPG",
	}, RequestMeta{})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, dispatcher.emails)
	assert.Empty(t, dispatcher.events)
}

func TestCreateEntry_NoAdminEmail(t *testing.T) {
	repo := new(MockWaitlistRepo)
	dispatcher := &fakeDispatcher{}
	svc := NewWaitlistService(repo, dispatcher, "", testLogger())

	repo.On("Create", mock.Anything).Return(nil)
	repo.On("CountAhead", 0, mock.Anything).Return(int64(0), nil)

	_, err := svc.CreateEntry(context.Background(), WaitlistSignupInput{
		Email:     "solo@example.com",
		GameTypes: "RPG",
	}, RequestMeta{})

	require.NoError(t, err)
	require.Len(t, dispatcher.emails, 1)
	assert.Contains(t, dispatcher.emails[0].Body, "Creator")
}

func TestGetStatus_Percentile(t *testing.T) {
	tests := []struct {
		name       string
		ahead      int64
		total      int64
		position   int64
		percentile int
	}{
		{"single entry", 0, 1, 1, 100},
		{"first of many", 0, 200, 1, 1},
		{"quarter mark", 24, 100, 25, 25},
		{"rounds to nearest", 0, 3, 1, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWaitlistRepo)
			svc := NewWaitlistService(repo, &fakeDispatcher{}, "", testLogger())

			entry := &entity.WaitlistEntry{ID: "e1", Email: "a@b.co", Status: entity.StatusPending}
			repo.On("GetByEmail", "a@b.co").Return(entry, nil)
			repo.On("CountAhead", 0, mock.Anything).Return(tt.ahead, nil)
			repo.On("Count").Return(tt.total, nil)

			status, err := svc.GetStatus("a@b.co")
			require.NoError(t, err)
			assert.Equal(t, tt.position, status.Position)
			assert.Equal(t, tt.percentile, status.Percentile)
			assert.Equal(t, tt.total, status.TotalCount)
		})
	}
}

func TestGetStatus_NotFound(t *testing.T) {
	repo := new(MockWaitlistRepo)
	svc := NewWaitlistService(repo, &fakeDispatcher{}, "", testLogger())

	repo.On("GetByEmail", "missing@example.com").Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetStatus("missing@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateEntry_OnlySuppliedFields(t *testing.T) {
	repo := new(MockWaitlistRepo)
	svc := NewWaitlistService(repo, &fakeDispatcher{}, "", testLogger())

	var captured map[string]interface{}
	repo.On("UpdateByEmail", "a@b.co", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(map[string]interface{})
	}).Return(&entity.WaitlistEntry{ID: "e1"}, nil)

	priority := 7
	_, err := svc.UpdateEntry("a@b.co", WaitlistUpdateInput{
		Status:   strPtr(entity.StatusApproved),
		Priority: &priority,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, captured["status"])
	assert.Equal(t, 7, captured["priority"])
	assert.NotContains(t, captured, "name")
	assert.NotContains(t, captured, "game_types")
}
