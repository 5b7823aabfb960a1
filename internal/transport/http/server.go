package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-registry/internal/command"
	"github.com/vovakirdan/wirechat-registry/internal/config"
	"github.com/vovakirdan/wirechat-registry/internal/core"
)

// NewServer builds the HTTP server: health check, WebSocket endpoint and
// read-only registry API.
func NewServer(reg *core.Registry, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	sessions := NewSessions(reg, cfg.SendBuffer, logger)
	commands := command.NewHandler(reg, logger)
	router.GET("/ws", gin.WrapH(NewWSHandler(sessions, commands, cfg.MaxMessageBytes, cfg.RateLimit, logger)))

	api := NewRegistryHandlers(reg, logger)
	group := router.Group("/api")
	group.GET("/users", api.ListUsers)
	group.GET("/channels", api.ListChannels)
	group.GET("/channels/:title", api.GetChannel)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
