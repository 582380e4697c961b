package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeur-ai/landing-api/internal/domain/entity"
)

func TestToPreferences_Defaults(t *testing.T) {
	var req *NewsletterPreferencesRequest
	prefs := req.ToPreferences()
	assert.Equal(t, entity.FrequencyMonthly, prefs.Frequency)
	assert.Equal(t, entity.DefaultNewsletterTopics, prefs.Topics)
}

func TestToPreferences_PartialOverride(t *testing.T) {
	req := &NewsletterPreferencesRequest{Frequency: entity.FrequencyWeekly}
	prefs := req.ToPreferences()
	assert.Equal(t, entity.FrequencyWeekly, prefs.Frequency)
	assert.Equal(t, entity.DefaultNewsletterTopics, prefs.Topics)

	req = &NewsletterPreferencesRequest{Topics: []string{"devlogs"}}
	prefs = req.ToPreferences()
	assert.Equal(t, entity.FrequencyMonthly, prefs.Frequency)
	assert.Equal(t, []string{"devlogs"}, prefs.Topics)
}
