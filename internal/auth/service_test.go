package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hoangtv/livechat-server/internal/store/sqlite"
)

// captureMailer records the last reset link instead of sending mail.
type captureMailer struct {
	to   string
	link string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	m.to = to
	m.link = link
	return nil
}

func newTestAuthService(t *testing.T) (*Service, *captureMailer) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
		ResetTTL: time.Hour,
	}

	m := &captureMailer{}
	return NewService(st, jwtConfig, m, "http://localhost:8080"), m
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ab", "a@example.com", "password123"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	// Validated after trimming whitespace.
	if _, err := svc.Register(ctx, " ab ", "a@example.com", "password123"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "not-an-email", "password123"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "a@example.com", "12345"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, " alice ", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("expected registration success, got %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("token should validate, got %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected trimmed username in claims, got %q", claims.Username)
	}

	// Stored username is trimmed, so this collides.
	if _, err := svc.Register(ctx, "alice", "other@example.com", "password123"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := svc.Register(ctx, "alice2", "alice@example.com", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "password123"); err != nil {
		t.Fatalf("expected login success, got %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "missing@example.com"); !errors.Is(err, ErrEmailNotFound) {
		t.Fatalf("expected ErrEmailNotFound, got %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "alice@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if m.to != "alice@example.com" {
		t.Fatalf("reset mail went to %q", m.to)
	}

	token := resetTokenFromLink(t, m.link)
	if err := svc.ResetPassword(ctx, token, "12345"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for short password, got %v", err)
	}
	if err := svc.ResetPassword(ctx, token, "newpassword"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "newpassword"); err != nil {
		t.Fatalf("new password should work, got %v", err)
	}
}

func TestResetTokenRejectsExpiredAndTampered(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	expiredCfg := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		ResetTTL: -time.Hour,
	}
	expired, err := GenerateResetToken(expiredCfg, "alice@example.com")
	if err != nil {
		t.Fatalf("generate expired token: %v", err)
	}
	if err := svc.ResetPassword(ctx, expired, "newpassword"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken for expired token, got %v", err)
	}

	// A session token must never pass as a reset token.
	session, err := svc.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.ResetPassword(ctx, session, "newpassword"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken for session token, got %v", err)
	}

	if err := svc.ResetPassword(ctx, "garbage.token.here", "newpassword"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken for garbage, got %v", err)
	}
}

func resetTokenFromLink(t *testing.T, link string) string {
	t.Helper()

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse reset link %q: %v", link, err)
	}
	if !strings.HasSuffix(u.Path, "/reset-password") {
		t.Fatalf("unexpected reset path in %q", link)
	}
	token := u.Query().Get("token")
	if token == "" {
		t.Fatalf("reset link %q carries no token", link)
	}
	return token
}
