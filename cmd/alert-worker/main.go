package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/cli"
	applog "saldo/internal/log"
	"saldo/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)

	logger.Info("Starting alert worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	alertWorker := worker.NewAlertWorker(worker.LogDispatcher{})

	done := make(chan error, 1)
	go func() {
		done <- amqpClient.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
			return alertWorker.HandleAlertMessage(ctx, msg)
		})
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
			os.Exit(1)
		}
	}

	// Give the consumer a moment to ack in-flight deliveries
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		logger.Warn("Consumer shutdown timeout reached")
	}

	logger.Info("Alert worker stopped")
}
