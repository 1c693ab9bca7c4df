package utils

import "swipedeck/models"

// SanitizeProfiles drops engagement entries missing any required display
// field. The poller runs every raw server payload through this before a
// collection replace, so the UI never renders blank rows.
func SanitizeProfiles(entries []models.EngagementEntry) []models.EngagementEntry {
	sanitized := make([]models.EngagementEntry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == "" || e.DisplayName == "" || e.DisplayProfilePic == "" {
			continue
		}
		sanitized = append(sanitized, e)
	}
	return sanitized
}

// SanitizeSuggestion reports whether a candidate carries the fields the
// swipe card needs to render it.
func SanitizeSuggestion(c *models.Candidate) bool {
	if c == nil {
		return false
	}
	return c.UserID != "" && c.FirstName != "" && c.DisplayPic != ""
}

// EntryByUserID finds an entry by key in a collection snapshot.
func EntryByUserID(entries []models.EngagementEntry, userID string) (models.EngagementEntry, bool) {
	for _, e := range entries {
		if e.UserID == userID {
			return e, true
		}
	}
	return models.EngagementEntry{}, false
}
