package dto

import (
	"time"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/service"
)

// StaffLoginRequest payload for the shared staff screen.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AdminLoginRequest payload for the hidden admin panel.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ParentLoginRequest payload.
type ParentLoginRequest struct {
	Email       string `json:"email"`
	StudentName string `json:"student_name"`
	Level       string `json:"level"`
	Section     string `json:"section"`
	Remember    bool   `json:"remember"`
}

// ToParentLogin maps the payload to the resolver input.
func (r ParentLoginRequest) ToParentLogin() service.ParentLogin {
	return service.ParentLogin{
		Email:       r.Email,
		StudentName: r.StudentName,
		Level:       r.Level,
		Section:     r.Section,
		Remember:    r.Remember,
	}
}

// SessionResponse describes the logged-in portal user.
type SessionResponse struct {
	ID          string             `json:"id"`
	Role        domain.SessionRole `json:"role"`
	Email       string             `json:"email"`
	DisplayName string             `json:"display_name"`
	StudentName string             `json:"student_name,omitempty"`
	Class       string             `json:"class,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   SessionResponse `json:"session"`
}

// NewSessionResponse maps a session.
func NewSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Role:        s.Role,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		StudentName: s.StudentName,
		Class:       s.Class,
		CreatedAt:   s.CreatedAt,
	}
}

// NewAuthResponse maps a started login.
func NewAuthResponse(result *service.LoginResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Session:   NewSessionResponse(result.Session),
	}
}
