package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"paydown/internal/amqp"
	"paydown/internal/config"
	applog "paydown/internal/log"
	"paydown/internal/services"
	"paydown/internal/storage"
)

// reminder-worker scans active scheduled debts and publishes a payment
// reminder for every debt due within the configured threshold.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentReminder, slog.LevelInfo)
	applog.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Reminder worker requires AMQP_URL")
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, "payment_reminders")
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor := services.NewReminderProcessor(store, amqpClient, cfg.ReminderThreshold, cfg.ReminderInterval)
	if err := processor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Reminder processor stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Reminder worker stopped gracefully")
}
