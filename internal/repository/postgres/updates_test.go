package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdateMap_OmitsResponseWhenNil(t *testing.T) {
	updates := statusUpdateMap("ARCHIVED", nil, nil)

	_, hasResponse := updates["response"]
	assert.False(t, hasResponse, "nil response must not touch the stored reply")

	assert.Equal(t, "ARCHIVED", updates["status"])

	respondedAt, ok := updates["responded_at"].(*time.Time)
	require.True(t, ok)
	assert.Nil(t, respondedAt, "responded_at is cleared for non-responded statuses")

	_, hasUpdatedAt := updates["updated_at"]
	assert.True(t, hasUpdatedAt)
}

func TestStatusUpdateMap_IncludesSuppliedResponse(t *testing.T) {
	response := "Thanks for reaching out"
	now := time.Now()

	updates := statusUpdateMap("RESPONDED", &response, &now)

	got, ok := updates["response"].(*string)
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, response, *got)

	respondedAt, ok := updates["responded_at"].(*time.Time)
	require.True(t, ok)
	require.NotNil(t, respondedAt)
	assert.Equal(t, now, *respondedAt)
}
