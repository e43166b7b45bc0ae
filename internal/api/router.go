package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/api/handlers"
	"github.com/leozw/monday-sms-bridge/internal/api/middleware"
	"github.com/leozw/monday-sms-bridge/internal/bridge"
	"github.com/leozw/monday-sms-bridge/internal/config"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

func NewServer(cfg *config.Config, service *bridge.Service, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())

	server := &Server{
		Config: cfg,
		Router: router,
	}

	server.setupRoutes(service, logger)
	return server
}

func (s *Server) setupRoutes(service *bridge.Service, logger *zap.Logger) {
	h := handlers.NewHandler(s.Config, service, logger)

	// Liveness and observability
	s.Router.GET("/", h.Root)
	s.Router.GET("/health", h.Health)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Provider webhook
	s.Router.POST("/sms", h.ReceiveSMS)
}
