package dto

import (
	"time"

	"bookstore_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileRes is the /auth/me view, extending UserRes with timestamps.
type ProfileRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthRes wraps the user returned by register/login. The token travels in the
// Set-Cookie header only, never in the body.
type AuthRes struct {
	User UserRes `json:"user"`
}

// NewUserRes maps a user entity to its public view.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NewProfileRes maps a user entity to the profile view.
func NewProfileRes(u *entity.User) ProfileRes {
	return ProfileRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
