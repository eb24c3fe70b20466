// Package migrations applies the SQL files under migrations/ with golang-migrate.
// The server can auto-migrate through gorm in development; shared environments
// run these files through the CLI instead.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
}

var migratorFactory = func(sourceURL string, driver database.Driver) (migrator, error) {
	return migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Dir             string // default "migrations"
	MigrationsTable string // default "schema_migrations"
	Logger          Logger
}

// Status is the schema version recorded in the migrations table.
type Status struct {
	Version uint
	Dirty   bool
	// Applied is false when no migration has ever run.
	Applied bool
}

func (c Config) info(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}

func (c Config) warn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

// Up applies every pending migration. Nothing to apply is not an error.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	return run(ctx, db, cfg, func(m migrator, cfg Config) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			cfg.info("No migrations to apply")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrations: up: %w", err)
		}
		cfg.info("Migrations applied successfully")
		return nil
	})
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, db *sql.DB, cfg Config) error {
	return run(ctx, db, cfg, func(m migrator, cfg Config) error {
		if _, _, err := m.Version(); errors.Is(err, migrate.ErrNilVersion) {
			cfg.info("No migrations to roll back")
			return nil
		}
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("migrations: rollback: %w", err)
		}
		cfg.info("Rolled back one migration")
		return nil
	})
}

func CurrentVersion(ctx context.Context, db *sql.DB, cfg Config) (Status, error) {
	var status Status
	err := run(ctx, db, cfg, func(m migrator, _ Config) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrations: version: %w", err)
		}
		status = Status{Version: version, Dirty: dirty, Applied: true}
		return nil
	})
	return status, err
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Dir) == "" {
		c.Dir = "migrations"
	}
	if strings.TrimSpace(c.MigrationsTable) == "" {
		c.MigrationsTable = "schema_migrations"
	}
	return c
}

// sourceURL turns dir into a file:// URL; spaces and Windows separators survive.
func sourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("migrations: resolve dir: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(absDir)}).String(), nil
}

// run builds a migrator and executes op on it. golang-migrate takes no
// context, so cancellation closes the migrator and returns ctx.Err().
func run(ctx context.Context, db *sql.DB, cfg Config, op func(migrator, Config) error) error {
	if db == nil {
		return fmt.Errorf("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg = cfg.withDefaults()

	src, err := sourceURL(cfg.Dir)
	if err != nil {
		return err
	}

	driver, err := driverFactory(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(src, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	var closeOnce sync.Once
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if srcErr != nil {
				cfg.warn("Migrations source close error", "error", srcErr)
			}
			if dbErr != nil {
				cfg.warn("Migrations db close error", "error", dbErr)
			}
		})
	}
	defer closeMigrator()

	cfg.info("Running SQL migrations", "source", src, "table", cfg.MigrationsTable)

	errCh := make(chan error, 1)
	go func() {
		errCh <- op(m, cfg)
	}()

	select {
	case <-ctx.Done():
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
