package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"trading_dashboard/internal/logger"
	"trading_dashboard/internal/models"
	"trading_dashboard/internal/repository"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72

	resetTokenBytes      = 32
	defaultResetTokenTTL = time.Hour

	tokenTypeBearer = "bearer"

	// ForgotPasswordMessage is returned whether or not the email is registered.
	ForgotPasswordMessage = "If email exists, reset link has been sent"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthOptions struct {
	ResetTokenTTL time.Duration
	// ExposeResetToken echoes generated reset tokens back to the caller.
	ExposeResetToken bool
	Notifier         ResetNotifier
	Log              *logger.Logger
}

// AuthService handles registration, login and the password reset flow.
type AuthService struct {
	users  repository.Users
	resets repository.PasswordResets
	hasher PasswordHasher
	tokens *TokenIssuer

	resetTTL    time.Duration
	exposeToken bool
	notifier    ResetNotifier
	log         *logger.Logger

	now       func() time.Time
	newSecret func() (string, error)
}

func NewAuthService(users repository.Users, resets repository.PasswordResets, hasher PasswordHasher, tokens *TokenIssuer, opts AuthOptions) *AuthService {
	ttl := opts.ResetTokenTTL
	if ttl <= 0 {
		ttl = defaultResetTokenTTL
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &AuthService{
		users:       users,
		resets:      resets,
		hasher:      hasher,
		tokens:      tokens,
		resetTTL:    ttl,
		exposeToken: opts.ExposeResetToken,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
		newSecret:   generateResetToken,
	}
}

// validateRegistration checks fields in a fixed order; the first failure wins.
func validateRegistration(in RegisterInput) error {
	if utf8.RuneCountInString(in.Username) < minUsernameLen {
		return invalid("username", "min_length", "Username must be at least %d characters", minUsernameLen)
	}
	if !emailPattern.MatchString(in.Email) {
		return invalid("email", "format", "Invalid email format")
	}
	return validatePassword("password", in.Password)
}

func validatePassword(field, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return invalid(field, "min_length", "Password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordBytes {
		return invalid(field, "max_length", "Password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// Register validates input, enforces username/email uniqueness and stores the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.PublicUser, error) {
	if err := validateRegistration(in); err != nil {
		return models.PublicUser{}, err
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return models.PublicUser{}, err
	}
	if existing != nil {
		return models.PublicUser{}, &ConflictError{Field: "username"}
	}
	existing, err = s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.PublicUser{}, err
	}
	if existing != nil {
		return models.PublicUser{}, &ConflictError{Field: "email"}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.PublicUser{}, err
	}

	u := models.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	// The UNIQUE constraints catch registrations racing past the checks above.
	id, err := s.users.Create(ctx, u)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return models.PublicUser{}, &ConflictError{Field: dup.Field}
		}
		return models.PublicUser{}, err
	}
	u.ID = id
	return u.Public(), nil
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil || !s.hasher.Verify(password, u.PasswordHash) {
		return LoginResult{}, ErrAuthentication
	}

	token, exp, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   exp,
		User:        u.Public(),
	}, nil
}

// ForgotPassword issues a reset token when the email is registered. The
// result does not reveal whether it was.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (ForgotResult, error) {
	result := ForgotResult{Message: ForgotPasswordMessage}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return ForgotResult{}, err
	}
	if u == nil {
		return result, nil
	}

	token, err := s.newSecret()
	if err != nil {
		return ForgotResult{}, fmt.Errorf("generate reset token: %w", err)
	}
	now := s.now().UTC()
	expiresAt := now.Add(s.resetTTL)
	if _, err := s.resets.Create(ctx, models.PasswordReset{
		Email:      u.Email,
		ResetToken: token,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
	}); err != nil {
		return ForgotResult{}, err
	}

	if err := s.notifier.NotifyReset(ctx, u.Email, token, expiresAt); err != nil {
		s.log.Warnw("password_reset_notify_failed", "email", u.Email, "err", err)
	}

	if s.exposeToken {
		result.ResetToken = token
	}
	return result, nil
}

// ResetPassword redeems a reset token and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}
	if token == "" {
		return ErrInvalidToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	pr, err := s.resets.Redeem(ctx, token, s.now().UTC(), hash)
	switch {
	case errors.Is(err, repository.ErrResetTokenInvalid):
		return ErrInvalidToken
	case errors.Is(err, repository.ErrResetUserMissing):
		return fmt.Errorf("user for reset request: %w", ErrNotFound)
	case err != nil:
		return err
	}

	s.log.Infow("password_reset_completed", "email", pr.Email)
	return nil
}

// ParseToken validates a bearer token and returns the user id it was issued for.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return claims.UserID, nil
}

// generateResetToken returns 32 random bytes, base64 URL-safe without padding.
func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
