package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the public profile for an account. The ID doubles as the
// auth identity; the password hash never leaves the server.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
