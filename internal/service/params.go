package service

import (
	"time"

	"trading_dashboard/internal/models"
)

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// LoginResult is a bearer credential plus the caller's public profile.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        models.PublicUser
}

// ForgotResult is identical for known and unknown emails. ResetToken is only
// filled in test mode.
type ForgotResult struct {
	Message    string
	ResetToken string
}

type ClientInput struct {
	FullName string
	APIKey   string
	APIToken string
}

type BotConfigInput struct {
	SelectedCoin string
	Percentage   float64
	StopLoss     float64
	TakeProfit   float64
	ProfitFactor float64
}
