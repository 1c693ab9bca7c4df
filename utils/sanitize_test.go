package utils

import (
	"testing"

	"swipedeck/models"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeProfiles(t *testing.T) {
	raw := []models.EngagementEntry{
		{UserID: "u1", DisplayName: "Ada", DisplayProfilePic: "https://pics/u1.jpg"},
		{UserID: "u2", DisplayProfilePic: "https://pics/u2.jpg"}, // no name
		{UserID: "u3", DisplayName: "Eve"},                      // no pic
		{DisplayName: "Ghost", DisplayProfilePic: "x"},          // no id
	}

	got := SanitizeProfiles(raw)

	assert.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)
}

func TestSanitizeProfilesEmpty(t *testing.T) {
	assert.Empty(t, SanitizeProfiles(nil))
}

func TestSanitizeSuggestion(t *testing.T) {
	tests := []struct {
		name string
		c    *models.Candidate
		want bool
	}{
		{"nil", nil, false},
		{"complete", &models.Candidate{UserID: "u1", FirstName: "Ada", DisplayPic: "p"}, true},
		{"missing name", &models.Candidate{UserID: "u1", DisplayPic: "p"}, false},
		{"missing pic", &models.Candidate{UserID: "u1", FirstName: "Ada"}, false},
		{"missing id", &models.Candidate{FirstName: "Ada", DisplayPic: "p"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSuggestion(tt.c))
		})
	}
}

func TestEntryByUserID(t *testing.T) {
	entries := []models.EngagementEntry{
		{UserID: "u1", DisplayName: "Ada", DisplayProfilePic: "p"},
		{UserID: "u2", DisplayName: "Eve", DisplayProfilePic: "p"},
	}

	got, ok := EntryByUserID(entries, "u2")
	assert.True(t, ok)
	assert.Equal(t, "Eve", got.DisplayName)

	_, ok = EntryByUserID(entries, "u9")
	assert.False(t, ok)
}
