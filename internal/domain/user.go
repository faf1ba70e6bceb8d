package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a conference delegate account
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsAdmin      bool      `json:"is_admin"`
	Institute    string    `json:"institute,omitempty"`
	Designation  string    `json:"designation,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Country      string    `json:"country,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates an active user account
func NewUser(name, email, phone, passwordHash string, role UserRole) (*User, error) {
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         role,
		Country:      "India",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
