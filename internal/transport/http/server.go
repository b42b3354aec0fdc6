package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hoangtv/livechat-server/internal/auth"
	"github.com/hoangtv/livechat-server/internal/config"
	"github.com/hoangtv/livechat-server/internal/core"
)

// NewServer builds the HTTP server: REST API for the auth collaborator
// and the WebSocket endpoint bridging into the chat core.
func NewServer(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, authService, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter wires all routes; split out from NewServer for tests.
func NewRouter(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	handlers := NewAPIHandlers(authService, hub, logger)

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	api := router.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/forgot-password", handlers.ForgotPassword)
		api.POST("/reset-password", handlers.ResetPassword)

		protected := api.Group("")
		protected.Use(AuthMiddleware(authService, logger))
		protected.GET("/rooms", handlers.Rooms)
	}

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authService, cfg.MessageRateLimit, logger)))

	return router
}
