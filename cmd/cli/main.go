// Package main is the operator CLI: schema migrations, store checks and a
// preview of the confirmation email.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/spf13/cobra"
)

func newRootCmd(logger *log.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cli",
		Short:         "Operator tooling for the waitlist API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Apply pending migrations
  cli migrate up

  # Show the recorded schema version
  cli migrate version

  # Check the store is reachable
  cli ping

  # Preview the confirmation email
  cli render-email "ada lovelace"`,
	}

	rootCmd.AddCommand(
		newMigrateCmd(logger),
		newPingCmd(logger),
		newRenderEmailCmd(),
	)
	return rootCmd
}

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(logger).ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.Error("Command failed", "error", err.Error())
		os.Exit(1)
	}
}
