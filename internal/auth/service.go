package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	mailer "github.com/hoangtv/livechat-server/internal/mail"
	"github.com/hoangtv/livechat-server/internal/store"
)

var (
	// ErrInvalidCredentials is returned when username/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering an existing username.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when registering an existing email.
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidUsername is returned when username doesn't meet constraints.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidEmail is returned when the email address doesn't parse.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidPassword is returned when password doesn't meet constraints.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrEmailNotFound is returned when no account matches the email.
	ErrEmailNotFound = errors.New("email not found")
	// ErrInvalidResetToken is returned for expired or tampered reset tokens.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// Service provides authentication operations. The chat core never
// touches this: it only ever sees the resolved username.
type Service struct {
	store        store.UserStore
	jwtConfig    *JWTConfig
	mailer       mailer.Mailer
	resetBaseURL string
}

// NewService creates a new authentication service. resetBaseURL is the
// externally reachable URL the reset link points at.
func NewService(userStore store.UserStore, jwtConfig *JWTConfig, m mailer.Mailer, resetBaseURL string) *Service {
	return &Service{
		store:        userStore,
		jwtConfig:    jwtConfig,
		mailer:       m,
		resetBaseURL: strings.TrimRight(resetBaseURL, "/"),
	}
}

// Register creates a new user with hashed password and returns a session token.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return "", ErrInvalidUsername
	}
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	if len(password) < 6 {
		return "", ErrInvalidPassword
	}

	if existing, err := s.store.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return "", ErrUserExists
	}
	if existing, err := s.store.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return "", ErrEmailExists
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, username, email, hashedPassword)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Login validates credentials and returns a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if errPwd := ComparePassword(user.PasswordHash, password); errPwd != nil {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ValidateToken validates a session token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}

// RequestPasswordReset issues a reset token for the account behind
// email and mails the recovery link.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("lookup email: %w", err)
	}

	token, err := GenerateResetToken(s.jwtConfig, user.Email)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	link := s.resetBaseURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	return nil
}

// ResetPassword redeems a reset token and stores a new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := ValidateResetToken(s.jwtConfig, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if len(newPassword) < 6 {
		return ErrInvalidPassword
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("lookup email: %w", err)
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
