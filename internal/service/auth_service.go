package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mindpath/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles advisor and student authentication
type AuthService struct {
	advisorUsername string
	advisorPassword string
	jwtSecret       []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("ADVISOR_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADVISOR_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		advisorUsername: username,
		advisorPassword: password,
		jwtSecret:       []byte(secret),
	}
}

// Login validates advisor credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.advisorUsername || password != s.advisorPassword {
		return nil, ErrInvalidCredentials
	}

	advisorID := "adv_" + uuid.New().String()[:8]

	claims := &model.AdvisorClaims{
		AdvisorID: advisorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		AdvisorID: advisorID,
	}, nil
}

// IssueStudentToken creates a token scoped to one student and tool
func (s *AuthService) IssueStudentToken(toolID, studentID string) (*model.StudentTokenResponse, error) {
	claims := &model.StudentClaims{
		ToolID:    toolID,
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.StudentTokenResponse{
		Token:     tokenString,
		ToolID:    toolID,
		StudentID: studentID,
	}, nil
}

// ValidateAdvisorToken validates an advisor JWT and returns claims
func (s *AuthService) ValidateAdvisorToken(tokenString string) (*model.AdvisorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AdvisorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AdvisorClaims)
	if !ok || !token.Valid || claims.AdvisorID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateStudentToken validates a student JWT and returns claims
func (s *AuthService) ValidateStudentToken(tokenString string) (*model.StudentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.StudentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.StudentClaims)
	if !ok || !token.Valid || claims.StudentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
