package models

import "time"

// BotConfig holds trading bot parameters. At most one config per user is active.
type BotConfig struct {
	ID           int       `json:"id"`
	UserID       int       `json:"-"`
	SelectedCoin string    `json:"selected_coin"`
	Percentage   float64   `json:"percentage"`
	StopLoss     float64   `json:"stop_loss"`
	TakeProfit   float64   `json:"take_profit"`
	ProfitFactor float64   `json:"profit_factor"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
