package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trading_dashboard/internal/models"
	"trading_dashboard/internal/repository"
)

// BotConfigService manages trading bot parameters. A user has at most one
// active config; toggling one deactivates the rest.
type BotConfigService struct {
	repo repository.BotConfigs
	now  func() time.Time
}

func NewBotConfigService(repo repository.BotConfigs) *BotConfigService {
	return &BotConfigService{repo: repo, now: time.Now}
}

func validateBotConfig(in BotConfigInput) error {
	switch {
	case strings.TrimSpace(in.SelectedCoin) == "":
		return invalid("selected_coin", "required", "Selected coin is required")
	case in.Percentage <= 0 || in.Percentage > 100:
		return invalid("percentage", "range", "Percentage must be in (0, 100]")
	case in.StopLoss < 0:
		return invalid("stop_loss", "min", "Stop loss must not be negative")
	case in.TakeProfit < 0:
		return invalid("take_profit", "min", "Take profit must not be negative")
	case in.ProfitFactor < 0:
		return invalid("profit_factor", "min", "Profit factor must not be negative")
	}
	return nil
}

func (s *BotConfigService) ListBotConfigs(ctx context.Context, userID int) ([]models.BotConfig, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ActiveBotConfig returns ErrNotFound when none of the user's configs is active.
func (s *BotConfigService) ActiveBotConfig(ctx context.Context, userID int) (models.BotConfig, error) {
	b, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return models.BotConfig{}, err
	}
	if b == nil {
		return models.BotConfig{}, fmt.Errorf("active bot config: %w", ErrNotFound)
	}
	return *b, nil
}

func (s *BotConfigService) CreateBotConfig(ctx context.Context, userID int, in BotConfigInput) (models.BotConfig, error) {
	if err := validateBotConfig(in); err != nil {
		return models.BotConfig{}, err
	}
	now := s.now().UTC()
	return s.repo.Create(ctx, models.BotConfig{
		UserID:       userID,
		SelectedCoin: strings.ToUpper(strings.TrimSpace(in.SelectedCoin)),
		Percentage:   in.Percentage,
		StopLoss:     in.StopLoss,
		TakeProfit:   in.TakeProfit,
		ProfitFactor: in.ProfitFactor,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// ToggleBotConfig makes id the user's only active config.
func (s *BotConfigService) ToggleBotConfig(ctx context.Context, userID, id int) error {
	err := s.repo.Activate(ctx, userID, id, s.now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("bot config %d: %w", id, ErrNotFound)
	}
	return err
}
