package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"saldo/internal/amqp"
	"saldo/internal/cli"
	"saldo/internal/export"
	apphttp "saldo/internal/http"
	applog "saldo/internal/log"
	"saldo/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	res := cli.InitBackend(logger, cfg)
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}()
	}

	// AMQP client for budget alerts (optional)
	var alertPublisher services.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without alerts", "error", err)
		} else {
			defer amqpClient.Close()
			alertPublisher = amqpClient
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	// Google Sheets statement export (optional)
	var exporter apphttp.StatementExporter
	if cfg.ExportEnabled() {
		sheetsExporter, err := export.New(context.Background(), cfg)
		if err != nil {
			logger.Error("Failed to initialize sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = sheetsExporter
		logger.Info("Initialized sheets export", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	}

	ledgerSvc := services.NewLedgerService(res.Store)
	budgetSvc := services.NewBudgetService(res.Store, res.Store, alertPublisher)
	statsSvc := services.NewStatsService(res.Store, nil)
	alertProc := services.NewAlertProcessor(budgetSvc, services.AlertProcessorConfig{
		PollInterval: cfg.AlertPollInterval,
	})

	srv := apphttp.NewServer(":"+cfg.Port, ledgerSvc, budgetSvc, statsSvc, exporter)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := statsSvc.Start(ctx); err != nil {
		logger.Error("Failed to start stats service", "error", err)
		os.Exit(1)
	}
	if err := alertProc.Start(ctx); err != nil {
		logger.Error("Failed to start alert processor", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting saldo server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := alertProc.Stop(shutdownCtx); err != nil {
			logger.Error("Alert processor shutdown error", "error", err)
		}
		if err := statsSvc.Stop(shutdownCtx); err != nil {
			logger.Error("Stats service shutdown error", "error", err)
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
