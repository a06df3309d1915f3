package repository

import (
	"context"
	"database/sql"
	"time"

	"trading_dashboard/internal/models"
)

// Users is the account directory.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordResets stores reset requests and redeems them.
type PasswordResets interface {
	Create(ctx context.Context, r models.PasswordReset) (int, error)
	// Redeem sets the password hash of the request's user and marks the
	// request used, both in one transaction.
	Redeem(ctx context.Context, token string, now time.Time, newHash string) (*models.PasswordReset, error)
}

type Clients interface {
	ListByUser(ctx context.Context, userID int) ([]models.Client, error)
	Create(ctx context.Context, c models.Client) (models.Client, error)
	Update(ctx context.Context, c models.Client) (models.Client, error)
	Delete(ctx context.Context, userID, id int) error
}

type BotConfigs interface {
	ListByUser(ctx context.Context, userID int) ([]models.BotConfig, error)
	GetActive(ctx context.Context, userID int) (*models.BotConfig, error)
	Create(ctx context.Context, b models.BotConfig) (models.BotConfig, error)
	// Activate deactivates the user's configs and activates id, atomically.
	Activate(ctx context.Context, userID, id int, now time.Time) error
}

type Repository struct {
	Users          Users
	PasswordResets PasswordResets
	Clients        Clients
	BotConfigs     BotConfigs
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:          NewUserRepository(db),
		PasswordResets: NewPasswordResetRepository(db),
		Clients:        NewClientRepository(db),
		BotConfigs:     NewBotConfigRepository(db),
	}
}
