package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"school-import-service/internal/config"
	"school-import-service/internal/logger"
	"school-import-service/internal/notify"
	"school-import-service/internal/queue"
	"school-import-service/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting notification worker")

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize mail client
	mailer := notify.NewClient(cfg)

	// Create notification worker
	notifyWorker := worker.NewNotificationWorker(cfg, mailer, redisClient)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start worker
	go func() {
		if err := notifyWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Notification worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down notification worker...")

	// Cancel context to stop worker
	cancel()
	notifyWorker.Stop()

	log.Info().Msg("Notification worker exited")
}
