package service

import (
	"context"
	"sync"
	"time"

	"trading_dashboard/internal/models"
)

// memUsers is an in-memory repository.Users with exact-match uniqueness.
type memUsers struct {
	mu     sync.Mutex
	byName map[string]models.User
	nextID int

	CreateFn func(u models.User) (int, error)
	creates  int
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]models.User{}}
}

func (m *memUsers) Create(_ context.Context, u models.User) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.CreateFn != nil {
		return m.CreateFn(u)
	}
	m.nextID++
	u.ID = m.nextID
	m.byName[u.Username] = u
	return u.ID, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byName {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) setHash(email, hash string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, u := range m.byName {
		if u.Email == email {
			u.PasswordHash = hash
			m.byName[name] = u
			return true
		}
	}
	return false
}

// mockResets records created requests; RedeemFn decides redemption.
type mockResets struct {
	created  []models.PasswordReset
	CreateFn func(r models.PasswordReset) (int, error)
	RedeemFn func(token string, now time.Time, newHash string) (*models.PasswordReset, error)
}

func (m *mockResets) Create(_ context.Context, r models.PasswordReset) (int, error) {
	m.created = append(m.created, r)
	if m.CreateFn != nil {
		return m.CreateFn(r)
	}
	return len(m.created), nil
}

func (m *mockResets) Redeem(_ context.Context, token string, now time.Time, newHash string) (*models.PasswordReset, error) {
	return m.RedeemFn(token, now, newHash)
}

type captureNotifier struct {
	email, token string
	calls        int
}

func (n *captureNotifier) NotifyReset(_ context.Context, email, token string, _ time.Time) error {
	n.calls++
	n.email, n.token = email, token
	return nil
}

type mockClients struct {
	ListFn   func(userID int) ([]models.Client, error)
	CreateFn func(c models.Client) (models.Client, error)
	UpdateFn func(c models.Client) (models.Client, error)
	DeleteFn func(userID, id int) error
}

func (m *mockClients) ListByUser(_ context.Context, userID int) ([]models.Client, error) {
	return m.ListFn(userID)
}
func (m *mockClients) Create(_ context.Context, c models.Client) (models.Client, error) {
	return m.CreateFn(c)
}
func (m *mockClients) Update(_ context.Context, c models.Client) (models.Client, error) {
	return m.UpdateFn(c)
}
func (m *mockClients) Delete(_ context.Context, userID, id int) error {
	return m.DeleteFn(userID, id)
}

type mockBotConfigs struct {
	ListFn      func(userID int) ([]models.BotConfig, error)
	GetActiveFn func(userID int) (*models.BotConfig, error)
	CreateFn    func(b models.BotConfig) (models.BotConfig, error)
	ActivateFn  func(userID, id int, now time.Time) error
}

func (m *mockBotConfigs) ListByUser(_ context.Context, userID int) ([]models.BotConfig, error) {
	return m.ListFn(userID)
}
func (m *mockBotConfigs) GetActive(_ context.Context, userID int) (*models.BotConfig, error) {
	return m.GetActiveFn(userID)
}
func (m *mockBotConfigs) Create(_ context.Context, b models.BotConfig) (models.BotConfig, error) {
	return m.CreateFn(b)
}
func (m *mockBotConfigs) Activate(_ context.Context, userID, id int, now time.Time) error {
	return m.ActivateFn(userID, id, now)
}
