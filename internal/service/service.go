package service

import (
	"context"

	"trading_dashboard/internal/models"
	"trading_dashboard/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.PublicUser, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (ForgotResult, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ParseToken(accessToken string) (int, error)
}

// Clients exposes per-user client CRUD. userID always comes from the bearer token.
type Clients interface {
	ListClients(ctx context.Context, userID int) ([]models.Client, error)
	CreateClient(ctx context.Context, userID int, in ClientInput) (models.Client, error)
	UpdateClient(ctx context.Context, userID, id int, in ClientInput) (models.Client, error)
	DeleteClient(ctx context.Context, userID, id int) error
}

type BotConfigs interface {
	ListBotConfigs(ctx context.Context, userID int) ([]models.BotConfig, error)
	ActiveBotConfig(ctx context.Context, userID int) (models.BotConfig, error)
	CreateBotConfig(ctx context.Context, userID int, in BotConfigInput) (models.BotConfig, error)
	ToggleBotConfig(ctx context.Context, userID, id int) error
}

// Portfolio is the read-only exchange view. GetPrice never fails; an
// unavailable price is 0.
type Portfolio interface {
	GetPortfolio(ctx context.Context) (models.Portfolio, error)
	GetPrice(ctx context.Context, pair string) float64
}

// Service aggregates all sub-services. Portfolio is nil when the exchange
// is not configured.
type Service struct {
	Authorization
	Clients
	BotConfigs
	Portfolio
}

type Deps struct {
	Hasher    PasswordHasher
	Tokens    *TokenIssuer
	Auth      AuthOptions
	Portfolio Portfolio
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.PasswordResets, hasher, deps.Tokens, deps.Auth),
		Clients:       NewClientService(repos.Clients),
		BotConfigs:    NewBotConfigService(repos.BotConfigs),
		Portfolio:     deps.Portfolio,
	}
}
