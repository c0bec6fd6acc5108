package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eshaffer321/ynab-card-sync/internal/api"
	"github.com/eshaffer321/ynab-card-sync/internal/application/sync"
	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/config"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/logging"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/storage"
)

// RunServe runs the review API server.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client := ynab.NewClient(cfg.Ynab.Token, cfg.Ynab.BudgetID, cfg.Ynab.AccountID)
	service := sync.NewService(client, store, cfg.Ynab.AccountID, logger)

	port := cfg.Server.Port
	if flags.Port != 0 {
		port = flags.Port
	}

	server := api.NewServer(api.Config{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, service, store, logger)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
	}()

	// Start server (blocks until shutdown)
	return server.Start()
}
