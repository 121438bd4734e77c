package model

import "github.com/golang-jwt/jwt/v5"

// AdvisorClaims are JWT claims for advisor (coach/operator) authentication
type AdvisorClaims struct {
	AdvisorID string `json:"advisorId"`
	jwt.RegisteredClaims
}

// StudentClaims are JWT claims for student tokens scoped to one tool
type StudentClaims struct {
	ToolID    string `json:"toolId"`
	StudentID string `json:"studentId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for advisor login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token     string `json:"token"`
	AdvisorID string `json:"advisorId"`
}

// StudentTokenResponse is returned when an advisor issues a student token
type StudentTokenResponse struct {
	Token     string `json:"token"`
	ToolID    string `json:"toolId"`
	StudentID string `json:"studentId"`
}
