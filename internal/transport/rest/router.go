package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"hydropoints/internal/app"
	"hydropoints/internal/service"
	"hydropoints/internal/transport/rest/handler"
	"hydropoints/internal/transport/rest/middleware"
	"hydropoints/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService  *service.AuthService
	UserService  *service.UserService
	LogService   *service.LogService
	TrustService *service.TrustService
	SweepService *service.SweepService
	WSHub        *ws.Hub
	App          *app.App
	WindowDays   int
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.UserService, c.LogService)
	trustHandler := handler.NewTrustHandler(c.TrustService)
	adminHandler := handler.NewAdminHandler(c.SweepService, c.TrustService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/users", userHandler.Register).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/users/{id}", wsHandler.UserWS).Methods("GET")
	v1.HandleFunc("/ws/admin", wsHandler.AdminWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// User routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/users/{id}/household", userHandler.UpdateHousehold).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}/logs", userHandler.AddEntry).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}/logs", userHandler.GetEntries).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}/scans", userHandler.AddScan).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}/trust", trustHandler.GetScore).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}/trust/recompute", trustHandler.Recompute).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}/trust/governance", trustHandler.Governance).Methods("GET", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/admin/sweep", adminHandler.TriggerSweep).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/sweep/{runId}", adminHandler.GetSweepRun).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/thresholds", adminHandler.GetThresholds).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/users/{id}/overview", handler.UserOverview(c.App, c.WindowDays)).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
