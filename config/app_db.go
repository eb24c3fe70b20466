package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/internal/store"
	"github.com/akeren/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

// NewStoreConfig reads the store endpoint and database name. STORE_URL and
// STORE_DB_NAME win over the older APP_DATABASE_URL and POSTGRES_DB_NAME.
func NewStoreConfig() *store.Config {
	return &store.Config{
		URL:             sanitizeEnv(utils.FirstEnvTrimmed("STORE_URL", "APP_DATABASE_URL")),
		Name:            sanitizeEnv(utils.FirstEnvTrimmed("STORE_DB_NAME", "POSTGRES_DB_NAME")),
		SSLMode:         sanitizeEnv(utils.GetEnvTrimmed("POSTGRES_SSLMODE")),
		MaxIdleConns:    utils.GetEnvPositiveInt("STORE_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    utils.GetEnvPositiveInt("STORE_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: utils.GetEnvPositiveDuration("STORE_CONN_MAX_LIFETIME", time.Minute),
		ConnectTimeout:  utils.GetEnvPositiveDuration("STORE_CONNECT_TIMEOUT", 10*time.Second),
	}
}

// NewStoreManager validates the configuration up front; the connection itself
// is opened on first use.
func NewStoreManager(logger *log.Logger, cfg *store.Config, autoMigrate bool) (*store.Manager, error) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Missing required store configuration", "error", err)
		return nil, fmt.Errorf("store configuration: %w", err)
	}

	var opts []store.Option
	if autoMigrate {
		opts = append(opts, store.WithConnectHook(AutoMigrateHook(logger)))
	}

	return store.NewManager(logger, cfg, opts...), nil
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrateHook(logger *log.Logger, entities ...any) store.ConnectHook {
	return func(ctx context.Context, db *gorm.DB) error {
		return AutoMigrate(logger, db.WithContext(ctx), entities...)
	}
}

// AutoMigrate migrates the given models, or every registered model when none are given.
func AutoMigrate(logger *log.Logger, db *gorm.DB, entities ...any) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if len(entities) == 0 {
		entities = models.ModelRegistry
	}

	if err := db.AutoMigrate(entities...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}
