package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. A user's role is fixed at
// registration and determines which profile table it owns.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Home returns the role's landing area for redirect decisions.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleDoctor:
		return "/doctor"
	case RolePatient:
		return "/patient"
	}
	return ""
}

// User represents a system account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is the minimal non-secret projection of a User kept for
// authorization decisions. The password hash never appears here.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    *string   `json:"email,omitempty"`
	Role     Role      `json:"role"`
}

// Projection derives the session view of a user.
func (u *User) Projection() *Session {
	return &Session{
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}
}
