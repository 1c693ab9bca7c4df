package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swipedeck/models"
	"swipedeck/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// stubRemote implements services.RemoteAPI with canned data: one candidate
// pool, one match, empty history.
type stubRemote struct{}

func (stubRemote) FetchIdentity(_ context.Context, userID string) (*models.Identity, error) {
	return &models.Identity{UserID: userID, GenderInterest: "female"}, nil
}

func (stubRemote) FetchCandidates(_ context.Context, _, _ string) ([]models.Candidate, error) {
	return []models.Candidate{
		{UserID: "c1", FirstName: "Ada", DOB: "1998-04-12", DisplayPic: "https://pics/c1.jpg"},
		{UserID: "c2", FirstName: "Eve", DOB: "1997-01-30", DisplayPic: "https://pics/c2.jpg"},
	}, nil
}

func (stubRemote) FetchLikes(_ context.Context, _ string) ([]models.EngagementEntry, error) {
	return nil, nil
}

func (stubRemote) FetchMatches(_ context.Context, _ string) ([]models.EngagementEntry, error) {
	return []models.EngagementEntry{
		{UserID: "m1", DisplayName: "Mallory", DisplayProfilePic: "https://pics/m1.jpg"},
	}, nil
}

func (stubRemote) FetchChatHistory(_ context.Context, _, _ string) ([]models.Message, error) {
	return nil, nil
}

func (stubRemote) SubmitDecision(_ context.Context, _, _, action string) (models.SwipeOutcome, error) {
	if action == models.ActionAccept {
		return models.SwipeOutcome{Kind: models.OutcomeAccepted}, nil
	}
	return models.SwipeOutcome{Kind: models.OutcomeRejected}, nil
}

func (stubRemote) SubmitUnmatch(_ context.Context, _, _ string) error { return nil }

func newTestController(t *testing.T) (*DashboardController, *services.Dashboard) {
	t.Helper()
	manager := services.NewSessionManager(stubRemote{}, nil, time.Minute, zap.NewNop())
	dashboard, _, err := manager.Login(context.Background(), "u0")
	require.NoError(t, err)
	t.Cleanup(dashboard.Stop)

	// One matches tick so the collection is loaded for the handlers.
	dashboard.Poller.PollMatchesOnce(context.Background())

	return NewDashboardController(manager), dashboard
}

func TestGetSuggestion(t *testing.T) {
	controller, _ := newTestController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/suggestion?userId=u0", nil)
	rec := httptest.NewRecorder()
	controller.GetSuggestion(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Suggestion models.Suggestion `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Suggestion.Candidate)
	assert.Equal(t, "c1", body.Suggestion.Candidate.UserID)
}

func TestGetSuggestionWithoutSession(t *testing.T) {
	controller, _ := newTestController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/suggestion?userId=nobody", nil)
	rec := httptest.NewRecorder()
	controller.GetSuggestion(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSwipeAdvances(t *testing.T) {
	controller, dashboard := newTestController(t)

	payload, _ := json.Marshal(map[string]string{"action": models.ActionAccept})
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/swipe?userId=u0", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	controller.HandleSwipe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, dashboard.Session.Cursor())

	var body struct {
		Outcome    models.SwipeOutcome `json:"outcome"`
		Suggestion models.Suggestion   `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.OutcomeAccepted, body.Outcome.Kind)
	require.NotNil(t, body.Suggestion.Candidate)
	assert.Equal(t, "c2", body.Suggestion.Candidate.UserID)
}

func TestHandleSwipeRejectsBadAction(t *testing.T) {
	controller, _ := newTestController(t)

	payload, _ := json.Marshal(map[string]string{"action": "superlike"})
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/swipe?userId=u0", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	controller.HandleSwipe(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChangeTabAndChat(t *testing.T) {
	controller, dashboard := newTestController(t)

	payload, _ := json.Marshal(map[string]string{"tab": string(models.ModeConversations)})
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/tab?userId=u0", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	controller.HandleChangeTab(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Mode    models.ViewMode `json:"mode"`
		Changed bool            `json:"changed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ModeConversations, body.Mode)
	assert.True(t, body.Changed)

	chat := dashboard.Session.Chat()
	require.NotNil(t, chat, "first match auto-binds on entry")
	assert.Equal(t, "m1", chat.MatchedUserID)
}

func TestHandleUnmatch(t *testing.T) {
	controller, dashboard := newTestController(t)

	payload, _ := json.Marshal(map[string]string{"matchedId": "m1"})
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/unmatch?userId=u0", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	controller.HandleUnmatch(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dashboard.Session.Matches().Data)

	// Unmatching the same id again is a no-op at the HTTP surface.
	req = httptest.NewRequest(http.MethodPost, "/api/dashboard/unmatch?userId=u0", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	controller.HandleUnmatch(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
