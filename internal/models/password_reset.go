package models

import "time"

// PasswordReset is a single-use, time-limited reset request for an email.
type PasswordReset struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	ResetToken string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsUsed     bool      `json:"is_used"`
	CreatedAt  time.Time `json:"created_at"`
}

// Redeemable reports whether the request can still be used at now.
func (r PasswordReset) Redeemable(now time.Time) bool {
	return !r.IsUsed && now.Before(r.ExpiresAt)
}
