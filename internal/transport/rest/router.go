package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mindpath/internal/service"
	"mindpath/internal/transport/rest/handler"
	"mindpath/internal/transport/rest/middleware"
	"mindpath/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	MonitorService    *service.MonitorService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	opsHandler := handler.NewOpsHandler(c.MonitorService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/assessments/{toolId}/students/{studentId}", wsHandler.StudentWS).Methods("GET")
	v1.HandleFunc("/ws/monitor", wsHandler.MonitorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Student routes (student token scoped to tool+student, or advisor token)
	studentRoutes := v1.NewRoute().Subrouter()
	studentRoutes.Use(authMW.RequireStudent)

	studentRoutes.HandleFunc("/assessments/{toolId}/students/{studentId}/items/{itemKey}", assessmentHandler.CompleteItem).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/assessments/{toolId}/students/{studentId}/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/assessments/{toolId}/students/{studentId}/report", assessmentHandler.GetReport).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/assessments/{toolId}/students/{studentId}", assessmentHandler.Restart).Methods("DELETE", "OPTIONS")

	// Advisor routes
	advisorRoutes := v1.NewRoute().Subrouter()
	advisorRoutes.Use(authMW.RequireAdvisor)

	advisorRoutes.HandleFunc("/auth/student-token", authHandler.IssueStudentToken).Methods("POST", "OPTIONS")
	advisorRoutes.HandleFunc("/assessments/{toolId}/compare", assessmentHandler.Compare).Methods("POST", "OPTIONS")
	advisorRoutes.HandleFunc("/ops/fallbacks", opsHandler.FallbackSummary).Methods("GET", "OPTIONS")
	advisorRoutes.HandleFunc("/ops/fallbacks/recent", opsHandler.RecentFallbacks).Methods("GET", "OPTIONS")

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
