package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/docs"
	"github.com/hanabenko/ticket-scraping-api/internal/app"
	"github.com/hanabenko/ticket-scraping-api/internal/config"
	"github.com/hanabenko/ticket-scraping-api/internal/handler"
	"github.com/hanabenko/ticket-scraping-api/internal/logger"
	"github.com/hanabenko/ticket-scraping-api/internal/queue"
	"github.com/hanabenko/ticket-scraping-api/internal/queue/sqs"
	"github.com/hanabenko/ticket-scraping-api/internal/service"
)

// @title Ticket Scraping API
// @version 1.0
// @description API for ingesting fan touchpoints and reading artist attribution and metrics
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	components, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	// The queue is optional; without it /events answers 503
	var publisher queue.EventPublisher
	if cfg.SQS.Enabled() {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		publisher = sqsClient
	} else {
		log.Info("SQS queue not configured, event publishing disabled")
	}

	touchpointService := service.NewTouchpointService(
		publisher,
		components.Orchestrator,
		components.Attribution,
		components.Rollups,
		components.Store,
		components.Mirror,
		log.Named("service"),
	)

	h := handler.NewHandler(touchpointService, log.Named("http"))

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down API server gracefully")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("API server shutdown error", zap.Error(err))
	}
}
