package config

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/notify"
	"github.com/akeren/waitlist-api/internal/store"
	"github.com/akeren/waitlist-api/pkg/besteffort"
	"github.com/akeren/waitlist-api/pkg/constants"
	"github.com/akeren/waitlist-api/pkg/utils"
)

type ApplicationConfig struct {
	Store           *store.Manager
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Notifier        *notify.Notifier
	Dispatcher      *besteffort.Dispatcher
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RequestTimeout      time.Duration
	NotificationTimeout time.Duration
	SeenEmailTTL        time.Duration
	DrainTimeout        time.Duration
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RequestTimeout:      utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		NotificationTimeout: utils.GetEnvPositiveDuration("NOTIFY_TIMEOUT", constants.DefaultNotificationTimeout),
		SeenEmailTTL:        utils.GetEnvPositiveDuration("SEEN_EMAIL_TTL", constants.DefaultSeenEmailTTL),
		DrainTimeout:        utils.GetEnvPositiveDuration("NOTIFY_DRAIN_TIMEOUT", 10*time.Second),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.Dispatcher != nil {
		drain := 10 * time.Second
		if ac.Config != nil {
			drain = ac.Config.DrainTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), drain)
		if err := ac.Dispatcher.Close(ctx); err != nil {
			ac.Logger.Warn("Gave up waiting for pending confirmation emails", "error", err)
		}
		cancel()
	}

	if ac.Store != nil {
		_ = ac.Store.Close()
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		_ = CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	storeManager, err := NewStoreManager(logger, NewStoreConfig(), autoMigrate)
	if err != nil {
		return nil, err
	}

	mailConfig := NewMailConfig()
	if err := mailConfig.Validate(); err != nil {
		logger.Error("Missing required mail configuration", "error", err)
		return nil, err
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	appConfig := NewAppConfig()
	cache := NewCacheOrNil(logger, NewCacheConfig())

	routerService := router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout: appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		Store:           storeManager,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Notifier:        mailConfig.NewNotifier(logger),
		Dispatcher:      besteffort.NewDispatcher(logger, appConfig.NotificationTimeout),
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
