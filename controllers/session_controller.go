package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"swipedeck/models"
	"swipedeck/services"
)

// SessionController handles session lifecycle: login starts a dashboard,
// logout tears it down.
type SessionController struct {
	Manager *services.SessionManager
}

// NewSessionController creates a new SessionController instance.
func NewSessionController(manager *services.SessionManager) *SessionController {
	return &SessionController{Manager: manager}
}

type loginRequest struct {
	AuthToken string `json:"authToken"`
}

// HandleLogin resolves the identity behind the token and starts the
// session. An invalid token means unauthenticated; the caller redirects out.
func (sc *SessionController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AuthToken == "" {
		http.Error(w, "authToken is required", http.StatusBadRequest)
		return
	}

	_, identity, err := sc.Manager.Login(r.Context(), req.AuthToken)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"user": identity})
}

type logoutRequest struct {
	UserID string `json:"userId"`
}

// HandleLogout ends the session. Logging out an unknown user is a no-op.
func (sc *SessionController) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	sc.Manager.Logout(req.UserID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
}
