package handlers

import (
	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/bridge"
	"github.com/leozw/monday-sms-bridge/internal/config"
)

type Handler struct {
	cfg     *config.Config
	service *bridge.Service
	logger  *zap.Logger
}

func NewHandler(cfg *config.Config, service *bridge.Service, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:     cfg,
		service: service,
		logger:  logger,
	}
}
