package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"swipedeck/api"
	"swipedeck/config"
	"swipedeck/logger"
	"swipedeck/middleware"
	"swipedeck/routes"
	"swipedeck/services"
	"swipedeck/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.App.LogFilePath, cfg.IsProduction())
	defer log.Sync()

	// Remote matching backend client
	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout, log)

	// Socket hub pushing state changes to the rendering layer
	hub := socket.NewHub(log)
	go func() {
		if err := hub.Server().Serve(); err != nil {
			log.Error("socket server stopped", zap.Error(err))
		}
	}()
	defer hub.Server().Close()

	// Session manager owning one dashboard per authenticated user
	manager := services.NewSessionManager(client, hub, cfg.Backend.PollInterval, log)

	limiter := middleware.NewActionLimiter(cfg.Limiter.ActionsPerSecond, cfg.Limiter.Burst)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Swipedeck")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/socket.io/", hub.Server())

	// Register routes
	routes.RegisterSessionRoutes(r, manager)
	routes.RegisterDashboardRoutes(r, manager, limiter)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.App.CorsAllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Info("starting gateway", zap.String("port", cfg.App.Port))
	if err := http.ListenAndServe(":"+cfg.App.Port, corsHandler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
