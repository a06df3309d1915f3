package handlers

import (
	"context"
	"net/http"

	"trading_dashboard/internal/models"
	"trading_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.PublicUser
	registerErr  error
	loginRes     service.LoginResult
	loginErr     error
	forgotRes    service.ForgotResult
	forgotErr    error
	resetErr     error
	parseID      int
	parseErr     error

	lastRegister    service.RegisterInput
	lastLoginUser   string
	lastLoginPass   string
	lastForgotEmail string
	lastResetToken  string
	lastResetPass   string
	lastParseToken  string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (models.PublicUser, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(_ context.Context, username, password string) (service.LoginResult, error) {
	m.lastLoginUser, m.lastLoginPass = username, password
	return m.loginRes, m.loginErr
}
func (m *mockAuth) ForgotPassword(_ context.Context, email string) (service.ForgotResult, error) {
	m.lastForgotEmail = email
	return m.forgotRes, m.forgotErr
}
func (m *mockAuth) ResetPassword(_ context.Context, token, newPassword string) error {
	m.lastResetToken, m.lastResetPass = token, newPassword
	return m.resetErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockClients struct {
	list      []models.Client
	client    models.Client
	err       error
	lastUser  int
	lastID    int
	lastInput service.ClientInput
}

func (m *mockClients) ListClients(_ context.Context, userID int) ([]models.Client, error) {
	m.lastUser = userID
	return m.list, m.err
}
func (m *mockClients) CreateClient(_ context.Context, userID int, in service.ClientInput) (models.Client, error) {
	m.lastUser, m.lastInput = userID, in
	return m.client, m.err
}
func (m *mockClients) UpdateClient(_ context.Context, userID, id int, in service.ClientInput) (models.Client, error) {
	m.lastUser, m.lastID, m.lastInput = userID, id, in
	return m.client, m.err
}
func (m *mockClients) DeleteClient(_ context.Context, userID, id int) error {
	m.lastUser, m.lastID = userID, id
	return m.err
}

type mockBots struct {
	list      []models.BotConfig
	cfg       models.BotConfig
	err       error
	lastUser  int
	lastID    int
	lastInput service.BotConfigInput
}

func (m *mockBots) ListBotConfigs(_ context.Context, userID int) ([]models.BotConfig, error) {
	m.lastUser = userID
	return m.list, m.err
}
func (m *mockBots) ActiveBotConfig(_ context.Context, userID int) (models.BotConfig, error) {
	m.lastUser = userID
	return m.cfg, m.err
}
func (m *mockBots) CreateBotConfig(_ context.Context, userID int, in service.BotConfigInput) (models.BotConfig, error) {
	m.lastUser, m.lastInput = userID, in
	return m.cfg, m.err
}
func (m *mockBots) ToggleBotConfig(_ context.Context, userID, id int) error {
	m.lastUser, m.lastID = userID, id
	return m.err
}

type mockPortfolio struct {
	portfolio models.Portfolio
	err       error
	prices    map[string]float64
	calls     int
}

func (m *mockPortfolio) GetPortfolio(context.Context) (models.Portfolio, error) {
	m.calls++
	return m.portfolio, m.err
}
func (m *mockPortfolio) GetPrice(_ context.Context, pair string) float64 {
	return m.prices[pair]
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
