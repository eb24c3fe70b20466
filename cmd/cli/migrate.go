package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/store"
	"github.com/akeren/waitlist-api/pkg/migrations"
	"github.com/akeren/waitlist-api/pkg/utils"
	"github.com/spf13/cobra"
)

const migrateTimeout = 5 * time.Minute

func newMigrateCmd(logger *log.Logger) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigration(cmd.Context(), logger, cmd.OutOrStdout(), migrateUp)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigration(cmd.Context(), logger, cmd.OutOrStdout(), migrateDown)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the recorded schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigration(cmd.Context(), logger, cmd.OutOrStdout(), migrateVersion)
			},
		},
	)
	return migrateCmd
}

type migrationStep func(ctx context.Context, m *store.Manager, cfg migrations.Config, out io.Writer) error

func runMigration(ctx context.Context, logger *log.Logger, out io.Writer, step migrationStep) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	manager, err := connectStore(ctx, logger)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer closeStore(logger, manager)

	storeCfg := manager.Config()
	if driver := storeCfg.Driver(); driver != store.DriverPostgres {
		return fmt.Errorf("migrations target postgres, got %q; start the server with --auto-migrate instead", driver)
	}

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}
	return step(ctx, manager, cfg, out)
}

func migrateUp(ctx context.Context, m *store.Manager, cfg migrations.Config, out io.Writer) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := migrations.Up(ctx, sqlDB, cfg); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, "migrations applied")
	return err
}

func migrateDown(ctx context.Context, m *store.Manager, cfg migrations.Config, out io.Writer) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := migrations.Rollback(ctx, sqlDB, cfg); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, "rolled back one migration")
	return err
}

func migrateVersion(ctx context.Context, m *store.Manager, cfg migrations.Config, out io.Writer) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	status, err := migrations.CurrentVersion(ctx, sqlDB, cfg)
	if err != nil {
		return err
	}
	return printStatus(out, status)
}

func printStatus(out io.Writer, status migrations.Status) error {
	if !status.Applied {
		_, err := fmt.Fprintln(out, "no migrations applied")
		return err
	}

	line := fmt.Sprintf("version %d", status.Version)
	if status.Dirty {
		line += " (dirty)"
	}
	_, err := fmt.Fprintln(out, line)
	return err
}
