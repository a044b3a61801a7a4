// Package cli holds the start-up steps shared by cmd/networth and
// cmd/networth-mirror.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"networth/internal/config"
	applog "networth/internal/log"
)

// SetupLogger builds the process logger at the given level and installs it as
// the slog default. Unknown levels fall back to info with a warning.
func SetupLogger(level string) *applog.Logger {
	lvl, err := applog.ParseLevel(level)
	logger := applog.New(applog.Config{
		Level:     lvl,
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}),
	})
	applog.SetDefault(logger)
	if err != nil {
		logger.Warn("Falling back to info log level", "error", err)
	}
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration for the web server.
// Exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeConfiguration,
			applog.FieldOperation, applog.OpValidate)
		os.Exit(1)
	}
	return cfg
}

// LoadAndValidateMirrorConfig is LoadAndValidateConfig for the mirror worker.
func LoadAndValidateMirrorConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.ValidateMirror(); err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeConfiguration,
			applog.FieldOperation, applog.OpValidate)
		os.Exit(1)
	}
	return cfg
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// The returned context is cancelled on SIGINT/SIGTERM after cleanup has run
// or timeout has passed, whichever comes first.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(context.Context)) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		shutdown(logger, sig.String(), timeout, cleanup)
		cancel()
	}()

	return ctx
}

// shutdown runs cleanup bounded by timeout.
func shutdown(logger *applog.Logger, reason string, timeout time.Duration, cleanup func(context.Context)) {
	logger.Info("Shutdown signal received",
		"signal", reason,
		applog.FieldOperation, applog.OpShutdown)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cleanup != nil {
		cleanup(ctx)
	}
	if ctx.Err() != nil {
		logger.Warn("Shutdown timeout reached",
			applog.FieldOperation, applog.OpShutdown,
			"timeout", timeout)
	}
}
