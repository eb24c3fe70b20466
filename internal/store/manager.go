package store

import (
	"context"
	"sync/atomic"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// OpenFunc establishes a new handle. The Manager pings it afterwards.
type OpenFunc func(ctx context.Context, cfg *Config) (*gorm.DB, error)

// ConnectHook runs once on a freshly opened handle before it is shared.
type ConnectHook func(ctx context.Context, db *gorm.DB) error

// Manager owns the process-wide store handle. The handle is opened on the first
// Acquire and reused afterwards; concurrent first calls share one attempt, and a
// failed attempt leaves nothing cached so the next call tries again.
type Manager struct {
	cfg       *Config
	logger    *log.Logger
	open      OpenFunc
	onConnect ConnectHook

	handle atomic.Pointer[gorm.DB]
	group  singleflight.Group
}

type Option func(*Manager)

func WithOpener(open OpenFunc) Option {
	return func(m *Manager) { m.open = open }
}

func WithConnectHook(hook ConnectHook) Option {
	return func(m *Manager) { m.onConnect = hook }
}

func NewManager(logger *log.Logger, cfg *Config, opts ...Option) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	m := &Manager{
		cfg:    cfg.withDefaults(),
		logger: logger,
		open:   openWithGorm,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Config() Config {
	return *m.cfg
}

func (m *Manager) Connected() bool {
	return m.handle.Load() != nil
}

func (m *Manager) Acquire(ctx context.Context) (*gorm.DB, error) {
	if db := m.handle.Load(); db != nil {
		return db, nil
	}

	v, err, _ := m.group.Do("connect", func() (any, error) {
		if db := m.handle.Load(); db != nil {
			return db, nil
		}

		db, err := m.connect(ctx)
		if err != nil {
			return nil, err
		}

		m.handle.Store(db)
		return db, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*gorm.DB), nil
}

func (m *Manager) connect(ctx context.Context) (*gorm.DB, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, m.logger)

	if err := m.cfg.Validate(); err != nil {
		logger.Error("Store configuration is incomplete", "error", err)
		return nil, err
	}

	// The handle outlives the request that happens to open it.
	connectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.ConnectTimeout)
	defer cancel()

	logger.Info("Connecting to store", "driver", m.cfg.Driver(), "url", redact(m.cfg.URL), "database", m.cfg.Name)

	db, err := m.open(connectCtx, m.cfg)
	if err != nil {
		logger.Error("Failed to open store connection", "error", err)
		return nil, asConnectivityError("failed to connect to store", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, apperrors.NewConnectivityError("failed to get database instance", err)
	}

	sqlDB.SetMaxIdleConns(m.cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(m.cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(m.cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(connectCtx); err != nil {
		logger.Error("Store ping failed", "error", err)
		_ = sqlDB.Close()
		return nil, apperrors.NewConnectivityError("store ping failed", err)
	}

	if m.onConnect != nil {
		if err := m.onConnect(connectCtx, db); err != nil {
			logger.Error("Store connect hook failed", "error", err)
			_ = sqlDB.Close()
			return nil, asConnectivityError("store initialization failed", err)
		}
	}

	logger.Info("Store connection established successfully")
	return db, nil
}

// Ping acquires the handle if needed and checks the link is still alive.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return apperrors.NewConnectivityError("failed to get database instance", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.NewConnectivityError("store ping failed", err)
	}
	return nil
}

// Close releases the handle if one was opened. A later Acquire reconnects.
func (m *Manager) Close() error {
	db := m.handle.Swap(nil)
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Close(); err != nil {
		m.logger.Error("Failed to close store", "error", err)
		return err
	}

	m.logger.Info("Store closed successfully")
	return nil
}

func openWithGorm(_ context.Context, cfg *Config) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}

	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

func asConnectivityError(message string, err error) error {
	if apperrors.GetErrorType(err) == apperrors.ErrorTypeConnectivity {
		return err
	}
	return apperrors.NewConnectivityError(message, err)
}
