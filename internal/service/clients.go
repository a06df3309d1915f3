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

// ClientService manages the trading clients owned by a user.
type ClientService struct {
	repo repository.Clients
	now  func() time.Time
}

func NewClientService(repo repository.Clients) *ClientService {
	return &ClientService{repo: repo, now: time.Now}
}

func validateClient(in ClientInput) error {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return invalid("full_name", "required", "Full name is required")
	case strings.TrimSpace(in.APIKey) == "":
		return invalid("api_key", "required", "API key is required")
	case strings.TrimSpace(in.APIToken) == "":
		return invalid("api_token", "required", "API token is required")
	}
	return nil
}

func (s *ClientService) ListClients(ctx context.Context, userID int) ([]models.Client, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ClientService) CreateClient(ctx context.Context, userID int, in ClientInput) (models.Client, error) {
	if err := validateClient(in); err != nil {
		return models.Client{}, err
	}
	now := s.now().UTC()
	return s.repo.Create(ctx, models.Client{
		UserID:    userID,
		FullName:  in.FullName,
		APIKey:    in.APIKey,
		APIToken:  in.APIToken,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *ClientService) UpdateClient(ctx context.Context, userID, id int, in ClientInput) (models.Client, error) {
	if err := validateClient(in); err != nil {
		return models.Client{}, err
	}
	c, err := s.repo.Update(ctx, models.Client{
		ID:        id,
		UserID:    userID,
		FullName:  in.FullName,
		APIKey:    in.APIKey,
		APIToken:  in.APIToken,
		UpdatedAt: s.now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return models.Client{}, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return c, err
}

func (s *ClientService) DeleteClient(ctx context.Context, userID, id int) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return err
}
