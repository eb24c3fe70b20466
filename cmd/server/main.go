package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/utils"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	var autoMigrate bool
	flag.BoolVar(&autoMigrate, "auto-migrate", false, "create or update the schema on first store connection (dev only)")
	flag.BoolVar(&autoMigrate, "m", false, "shorthand for --auto-migrate")
	flag.Parse()

	logger.Info("Waitlist API initialized ✅", "auto_migrate", autoMigrate)

	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrate)
	if err != nil {
		logger.Error("Failed to load application configuration", "error", err.Error())
		os.Exit(1)
	}

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server...")
		if err := appConfig.RouterService.RunHTTPServer(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("Server error", "error", err)
		appConfig.Cleanup()
		os.Exit(1)
	case <-ctx.Done():
		logger.Info("Shutdown signal received, shutting down gracefully...")
	}

	shutdownTimeout := utils.GetEnvPositiveDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop taking requests first; Cleanup then drains pending confirmation emails.
	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}
	appConfig.Cleanup()

	logger.Info("Graceful shutdown completed")
}
