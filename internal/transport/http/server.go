package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/boogeyman0929/chat-backend/internal/auth"
	"github.com/boogeyman0929/chat-backend/internal/config"
	"github.com/boogeyman0929/chat-backend/internal/core"
)

// NewServer builds the HTTP server: login API, session introspection, health
// check, and the WebSocket endpoint.
func NewServer(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	apiHandlers := NewAPIHandlers(authService, logger)
	api := router.Group("/api")
	api.POST("/login", apiHandlers.Login)
	api.GET("/me", AuthMiddleware(authService, logger), apiHandlers.Me)

	wsHandler := NewWSHandler(hub, authService, cfg.MessageRateLimit, logger)
	router.GET("/ws", wsHandler.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
