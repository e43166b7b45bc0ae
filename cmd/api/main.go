package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/api"
	"github.com/leozw/monday-sms-bridge/internal/bridge"
	"github.com/leozw/monday-sms-bridge/internal/config"
	"github.com/leozw/monday-sms-bridge/internal/metrics"
	"github.com/leozw/monday-sms-bridge/internal/monday"
)

func main() {
	// Local development convenience; deployments set real env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	client := monday.NewClient(cfg.Monday, logger)
	service := bridge.NewService(cfg, client, collector, logger)

	server := api.NewServer(cfg, service, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Webhook bridge started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
