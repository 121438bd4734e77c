package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"mindpath/internal/service"
)

type contextKey string

const (
	AdvisorIDKey contextKey = "advisorId"
	StudentIDKey contextKey = "studentId"
	ToolIDKey    contextKey = "toolId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAdvisor validates an advisor JWT from the Authorization header
func (m *AuthMiddleware) RequireAdvisor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateAdvisorToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), AdvisorIDKey, claims.AdvisorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStudent validates a student JWT and checks it matches the tool and
// student in the request path. Advisor tokens pass too, so advisors can act
// on behalf of any student.
func (m *AuthMiddleware) RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		if advisorClaims, err := m.authSvc.ValidateAdvisorToken(token); err == nil {
			ctx := context.WithValue(r.Context(), AdvisorIDKey, advisorClaims.AdvisorID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		claims, err := m.authSvc.ValidateStudentToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		if claims.ToolID != vars["toolId"] || claims.StudentID != vars["studentId"] {
			http.Error(w, `{"error":"token not valid for this assessment"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), StudentIDKey, claims.StudentID)
		ctx = context.WithValue(ctx, ToolIDKey, claims.ToolID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdvisorID extracts the advisor ID from the request context
func GetAdvisorID(ctx context.Context) string {
	if v, ok := ctx.Value(AdvisorIDKey).(string); ok {
		return v
	}
	return ""
}

// GetStudentID extracts the student ID from the request context
func GetStudentID(ctx context.Context) string {
	if v, ok := ctx.Value(StudentIDKey).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
