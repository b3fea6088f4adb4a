// Package cli provides common CLI initialization utilities shared by the
// finapp subcommands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	applog "finapp/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger at the configured level and
// installs it as the slog default.
func SetupLogger(level string) *applog.Logger {
	return SetupLoggerFormat(level, applog.FormatText)
}

// SetupLoggerFormat is SetupLogger with an output format.
func SetupLoggerFormat(level, format string) *applog.Logger {
	lc := applog.DefaultConfig()
	lc.Format = format
	if lvl, err := applog.ParseLevel(level); err == nil {
		lc.Level = lvl
	}
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
