package models

import "time"

// Client is a trading client (exchange credentials) owned by a user.
type Client struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	FullName  string    `json:"full_name"`
	APIKey    string    `json:"api_key"`
	APIToken  string    `json:"api_token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
