package handler

import (
	"encoding/json"
	"net/http"

	"mindpath/internal/model"
	"mindpath/internal/service"
	"mindpath/internal/transport/rest/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// StudentTokenRequest is the request body for issuing a student token
type StudentTokenRequest struct {
	ToolID    string `json:"toolId"`
	StudentID string `json:"studentId"`
}

// IssueStudentToken handles POST /v1/auth/student-token (advisor only)
func (h *AuthHandler) IssueStudentToken(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdvisorID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req StudentTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ToolID == "" || req.StudentID == "" {
		writeError(w, http.StatusBadRequest, "toolId and studentId are required")
		return
	}

	resp, err := h.authSvc.IssueStudentToken(req.ToolID, req.StudentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
