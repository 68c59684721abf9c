package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int64) error
}

// User represents a stored user with authentication material.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Name          string
	EmailVerified bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicUser is the projection of User that may leave the service.
type PublicUser struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
}

// Public returns the user without the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
	}
}
