package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"` // don’t expose hash
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the subset of User returned to API callers.
type PublicUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at,omitempty"` // RFC3339, UTC
}

// Public strips the hash and formats the creation time.
func (u User) Public() PublicUser {
	p := PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
	if !u.CreatedAt.IsZero() {
		p.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return p
}
