package dto

import (
	"time"

	"github.com/aoacon/conference-backend/internal/domain"
)

// RegisterUserRequest represents a signup request
type RegisterUserRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,min=8,max=15"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required"`
	Institute   string `json:"institute,omitempty"`
	Designation string `json:"designation,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	IsAdmin     bool      `json:"is_admin"`
	Institute   string    `json:"institute,omitempty"`
	Designation string    `json:"designation,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromUser converts a domain User to UserResponse
func FromUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		IsAdmin:     u.IsAdmin,
		Institute:   u.Institute,
		Designation: u.Designation,
		City:        u.City,
		State:       u.State,
		Country:     u.Country,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
}
