package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"swipedeck/models"
	"swipedeck/services"
)

// DashboardController exposes the per-session snapshots and action hooks to
// the rendering layer.
type DashboardController struct {
	Manager *services.SessionManager
}

// NewDashboardController creates a new DashboardController instance.
func NewDashboardController(manager *services.SessionManager) *DashboardController {
	return &DashboardController{Manager: manager}
}

func (dc *DashboardController) dashboard(w http.ResponseWriter, r *http.Request) (*services.Dashboard, bool) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return nil, false
	}
	dashboard, ok := dc.Manager.Get(userID)
	if !ok {
		http.Error(w, "no active session for userId", http.StatusUnauthorized)
		return nil, false
	}
	return dashboard, true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

// GetSuggestion returns the candidate currently presented on the swipe card,
// or the pending error replacing it.
func (dc *DashboardController) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]interface{}{"suggestion": dashboard.Session.Suggestion()})
}

// GetLikes returns the LikesReceived snapshot.
func (dc *DashboardController) GetLikes(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]interface{}{"likes": dashboard.Session.Likes()})
}

// GetMatches returns the Matches snapshot.
func (dc *DashboardController) GetMatches(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]interface{}{"matches": dashboard.Session.Matches()})
}

// GetChat returns the bound chat session, null when none is bound.
func (dc *DashboardController) GetChat(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]interface{}{"chat": dashboard.Session.Chat()})
}

// GetView returns the view mode plus the readiness flags gating it.
func (dc *DashboardController) GetView(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}
	session := dashboard.Session
	writeJSON(w, map[string]interface{}{
		"mode":           session.Mode(),
		"likesLoading":   session.Likes().Loading,
		"matchesLoading": session.Matches().Loading,
		"queueLength":    session.QueueLen(),
		"cursor":         session.Cursor(),
	})
}

type swipeRequest struct {
	Action string `json:"action"`
}

// HandleSwipe submits an accept/reject decision on whatever is presented:
// the re-presented liked profile when one is active, otherwise the queue
// head. The two paths never fall through to each other.
func (dc *DashboardController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}

	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !models.ValidAction(req.Action) {
		http.Error(w, "action must be accept or reject", http.StatusBadRequest)
		return
	}

	var outcome models.SwipeOutcome
	var err error
	if dashboard.Session.LikedProfileActive() {
		outcome, err = dashboard.Swipe.DecideFromLikedProfile(r.Context(), req.Action)
	} else {
		outcome, err = dashboard.Swipe.DecideFromQueue(r.Context(), req.Action)
	}
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, services.ErrLikedProfileActive), errors.Is(err, services.ErrNothingPresented):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, map[string]interface{}{
		"outcome":    outcome,
		"suggestion": dashboard.Session.Suggestion(),
	})
}

type selectProfileRequest struct {
	ProfileID string `json:"profileId"`
}

// HandleSelectProfile re-presents a profile from the received likes list on
// the swipe card.
func (dc *DashboardController) HandleSelectProfile(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}

	var req selectProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProfileID == "" {
		http.Error(w, "profileId is required", http.StatusBadRequest)
		return
	}

	if err := dashboard.Swipe.PresentLikedProfile(req.ProfileID); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]interface{}{"suggestion": dashboard.Session.Suggestion()})
}

type changeTabRequest struct {
	Tab string `json:"tab"`
}

// HandleChangeTab requests a view-mode transition. A denied transition is
// not an error; the response carries the mode actually in effect.
func (dc *DashboardController) HandleChangeTab(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}

	var req changeTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mode, changed, err := dashboard.View.ChangeTab(r.Context(), req.Tab)
	if err != nil && errors.Is(err, services.ErrUnknownTab) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]interface{}{"mode": mode, "changed": changed})
}

type unmatchRequest struct {
	MatchedID string `json:"matchedId"`
}

// HandleUnmatch severs a match. Unmatching an id that is already gone is a
// no-op, not an error.
func (dc *DashboardController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}

	var req unmatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MatchedID == "" {
		http.Error(w, "matchedId is required", http.StatusBadRequest)
		return
	}

	err := dashboard.Binder.Unmatch(r.Context(), req.MatchedID)
	switch {
	case err == nil || errors.Is(err, models.ErrNotMatched):
		// already gone: fall through with the current collection
	case errors.Is(err, models.ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
		return
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]interface{}{"matches": dashboard.Session.Matches()})
}

// HandleChangePreferences re-resolves the identity and rebuilds the
// candidate queue, picking up a changed gender interest.
func (dc *DashboardController) HandleChangePreferences(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := dc.dashboard(w, r)
	if !ok {
		return
	}

	if err := dashboard.ChangePreferences(r.Context()); err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]interface{}{"suggestion": dashboard.Session.Suggestion()})
}
