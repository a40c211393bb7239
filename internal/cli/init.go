// Package cli consolidates the bootstrap sequence shared by cmd/saldo and
// cmd/alert-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"saldo/internal/backend"
	"saldo/internal/config"
	applog "saldo/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging for the given component and
// sets it as the process default.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(applog.Config{Component: component})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend constructs the configured ledger store.
// Returns the backend result or exits the process on failure.
func InitBackend(logger *applog.Logger, cfg *config.Config) *backend.Result {
	res, err := backend.Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return res
}
