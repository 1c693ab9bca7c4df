package routes

import (
	"swipedeck/controllers"
	"swipedeck/services"

	"github.com/gorilla/mux"
)

// RegisterSessionRoutes sets up the session lifecycle routes under
// /api/session.
func RegisterSessionRoutes(r *mux.Router, manager *services.SessionManager) {
	controller := controllers.NewSessionController(manager)

	sessionRouter := r.PathPrefix("/api/session").Subrouter()
	sessionRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	sessionRouter.HandleFunc("/logout", controller.HandleLogout).Methods("POST")
}
