package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hoangtv/livechat-server/internal/auth"
	"github.com/hoangtv/livechat-server/internal/config"
	"github.com/hoangtv/livechat-server/internal/core"
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

type testEnv struct {
	srv    *httptest.Server
	auth   *auth.Service
	mailer *captureMailer
	hub    *core.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
		ResetTTL: time.Hour,
	}

	mailer := &captureMailer{}
	authService := auth.NewService(st, jwtConfig, mailer, "http://localhost:8080")

	hub := core.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Default()
	logger := zerolog.Nop()
	srv := httptest.NewServer(NewRouter(hub, authService, cfg, &logger))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, auth: authService, mailer: mailer, hub: hub}
}

// registerUser creates an account directly through the service and
// returns a valid session token.
func registerUser(t *testing.T, env *testEnv, username, email string) string {
	t.Helper()

	token, err := env.auth.Register(context.Background(), username, email, "password123")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return token
}
