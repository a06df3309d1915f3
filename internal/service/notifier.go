package service

import (
	"context"
	"time"

	"trading_dashboard/internal/logger"
)

// ResetNotifier delivers a reset token to its owner (email, queue, ...).
type ResetNotifier interface {
	NotifyReset(ctx context.Context, email, token string, expiresAt time.Time) error
}

// LogNotifier records that a token was issued. The token itself is not logged.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyReset(_ context.Context, email, _ string, expiresAt time.Time) error {
	if n.log != nil {
		n.log.Infow("password_reset_issued", "email", email, "expires_at", expiresAt.UTC())
	}
	return nil
}
