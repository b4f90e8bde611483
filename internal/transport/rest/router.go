package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/handler"
	"feedbackpro/internal/transport/rest/middleware"
	"feedbackpro/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	SurveyService       *service.SurveyService
	BuilderService      *service.BuilderService
	ResponseService     *service.ResponseService
	AnalyticsService    *service.AnalyticsService
	DistributionService *service.DistributionService
	CountCache          cache.ResponseCountCache
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.BuilderService)
	responseHandler := handler.NewResponseHandler(c.ResponseService, c.SurveyService, c.DistributionService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService, c.CountCache)
	distributionHandler := handler.NewDistributionHandler(c.DistributionService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/public/{token}", responseHandler.GetPublic).Methods("GET", "OPTIONS")
	v1.HandleFunc("/public/{token}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses", responseHandler.SubmitDirect).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")
	v1.HandleFunc("/ws/surveys/{surveyId}", wsHandler.SurveyWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Account routes (require auth)
	accountRoutes := v1.NewRoute().Subrouter()
	accountRoutes.Use(authMW.RequireAccount)

	accountRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	accountRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}/status", surveyHandler.SetStatus).Methods("PUT", "OPTIONS")

	// Builder routes
	accountRoutes.HandleFunc("/surveys/{surveyId}/questions", surveyHandler.AddQuestion).Methods("POST", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}/questions/{questionId}", surveyHandler.UpdateQuestion).Methods("PATCH", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}/questions/{questionId}", surveyHandler.RemoveQuestion).Methods("DELETE", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}/questions/{questionId}/move", surveyHandler.MoveQuestion).Methods("POST", "OPTIONS")

	// Response viewing
	accountRoutes.HandleFunc("/surveys/{surveyId}/responses", responseHandler.List).Methods("GET", "OPTIONS")

	// Analytics
	accountRoutes.HandleFunc("/analytics/summary", analyticsHandler.Summary).Methods("GET", "OPTIONS")
	accountRoutes.HandleFunc("/analytics/live", analyticsHandler.LiveCounts).Methods("GET", "OPTIONS")

	// Distribution
	accountRoutes.HandleFunc("/surveys/{surveyId}/share", distributionHandler.CreateShareLink).Methods("POST", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}/invite/email", distributionHandler.InviteByEmail).Methods("POST", "OPTIONS")
	accountRoutes.HandleFunc("/surveys/{surveyId}/invite/sms", distributionHandler.InviteBySMS).Methods("POST", "OPTIONS")

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
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
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
