package routes

import (
	"net/http"

	"swipedeck/controllers"
	"swipedeck/middleware"
	"swipedeck/services"

	"github.com/gorilla/mux"
)

// RegisterDashboardRoutes sets up the snapshot and action routes under
// /api/dashboard. Action routes sit behind the per-user limiter.
func RegisterDashboardRoutes(r *mux.Router, manager *services.SessionManager, limiter *middleware.ActionLimiter) {
	controller := controllers.NewDashboardController(manager)

	dashboardRouter := r.PathPrefix("/api/dashboard").Subrouter()

	// Read-only snapshots
	dashboardRouter.HandleFunc("/suggestion", controller.GetSuggestion).Methods("GET")
	dashboardRouter.HandleFunc("/likes", controller.GetLikes).Methods("GET")
	dashboardRouter.HandleFunc("/matches", controller.GetMatches).Methods("GET")
	dashboardRouter.HandleFunc("/chat", controller.GetChat).Methods("GET")
	dashboardRouter.HandleFunc("/view", controller.GetView).Methods("GET")

	// Action hooks
	dashboardRouter.Handle("/swipe", limiter.Handler(http.HandlerFunc(controller.HandleSwipe))).Methods("POST")
	dashboardRouter.Handle("/profile", limiter.Handler(http.HandlerFunc(controller.HandleSelectProfile))).Methods("POST")
	dashboardRouter.Handle("/tab", limiter.Handler(http.HandlerFunc(controller.HandleChangeTab))).Methods("POST")
	dashboardRouter.Handle("/unmatch", limiter.Handler(http.HandlerFunc(controller.HandleUnmatch))).Methods("POST")
	dashboardRouter.Handle("/preferences", limiter.Handler(http.HandlerFunc(controller.HandleChangePreferences))).Methods("POST")
}
