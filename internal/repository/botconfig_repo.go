package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trading_dashboard/internal/models"
)

type BotConfigRepository struct {
	db *sql.DB
}

func NewBotConfigRepository(db *sql.DB) *BotConfigRepository {
	return &BotConfigRepository{db: db}
}

var _ BotConfigs = (*BotConfigRepository)(nil)

const (
	botConfigColumns = `id, user_id, selected_coin, percentage, stop_loss, take_profit, profit_factor, is_active, created_at, updated_at`

	selectBotConfigsByUserSQL = `SELECT ` + botConfigColumns + ` FROM bot_configs WHERE user_id = ? ORDER BY id ASC`
	selectActiveBotConfigSQL  = `SELECT ` + botConfigColumns + ` FROM bot_configs WHERE user_id = ? AND is_active = 1 ORDER BY id ASC LIMIT 1`
	insertBotConfigSQL        = `INSERT INTO bot_configs (user_id, selected_coin, percentage, stop_loss, take_profit, profit_factor, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectOwnedBotConfigSQL = `SELECT id FROM bot_configs WHERE id = ? AND user_id = ?`
	deactivateBotConfigsSQL = `UPDATE bot_configs SET is_active = 0, updated_at = ? WHERE user_id = ? AND is_active = 1`
	activateBotConfigSQL    = `UPDATE bot_configs SET is_active = 1, updated_at = ? WHERE id = ? AND user_id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBotConfig(s rowScanner) (models.BotConfig, error) {
	var b models.BotConfig
	err := s.Scan(&b.ID, &b.UserID, &b.SelectedCoin, &b.Percentage, &b.StopLoss, &b.TakeProfit, &b.ProfitFactor, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BotConfigRepository) ListByUser(ctx context.Context, userID int) ([]models.BotConfig, error) {
	rows, err := r.db.QueryContext(ctx, selectBotConfigsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select bot configs for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.BotConfig, 0)
	for rows.Next() {
		b, err := scanBotConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bot config: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bot configs: %w", err)
	}
	return out, nil
}

// GetActive returns the user's active config, or (nil, nil) when none is active.
func (r *BotConfigRepository) GetActive(ctx context.Context, userID int) (*models.BotConfig, error) {
	b, err := scanBotConfig(r.db.QueryRowContext(ctx, selectActiveBotConfigSQL, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select active bot config for user %d: %w", userID, err)
	}
	return &b, nil
}

// Create inserts an inactive config.
func (r *BotConfigRepository) Create(ctx context.Context, b models.BotConfig) (models.BotConfig, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertBotConfigSQL,
		b.UserID, b.SelectedCoin, b.Percentage, b.StopLoss, b.TakeProfit, b.ProfitFactor, false, now, now)
	if err != nil {
		return models.BotConfig{}, fmt.Errorf("insert bot config: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.BotConfig{}, fmt.Errorf("get last insert id for bot config: %w", err)
	}
	b.ID = int(id)
	b.IsActive = false
	b.CreatedAt, b.UpdatedAt = now, now
	return b, nil
}

func (r *BotConfigRepository) Activate(ctx context.Context, userID, id int, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var found int
	if err := tx.QueryRowContext(ctx, selectOwnedBotConfigSQL, id, userID).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select bot config %d: %w", id, err)
	}

	now = now.UTC()
	if _, err := tx.ExecContext(ctx, deactivateBotConfigsSQL, now, userID); err != nil {
		return fmt.Errorf("deactivate bot configs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, activateBotConfigSQL, now, id, userID); err != nil {
		return fmt.Errorf("activate bot config %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate transaction: %w", err)
	}
	return nil
}
