package postgres

import "time"

// statusUpdateMap builds the column map for a contact-form or
// investment-inquiry status update. A nil response means "leave the stored
// reply untouched", so the key only appears when text was supplied.
// responded_at is always written: set on RESPONDED, cleared otherwise.
func statusUpdateMap(status string, response *string, respondedAt *time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"status":       status,
		"responded_at": respondedAt,
		"updated_at":   time.Now(),
	}
	if response != nil {
		updates["response"] = response
	}
	return updates
}
