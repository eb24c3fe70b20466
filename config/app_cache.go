package config

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	pkgredis "github.com/akeren/waitlist-api/pkg/redis"
	"github.com/akeren/waitlist-api/pkg/utils"
)

// Cache is the shared key/value store. The waitlist uses it to remember
// emails already on the list; health checks ping it.
type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set uses ttl=0 for no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

var ErrCacheNotConfigured = errors.New("cache is not configured: set REDIS_URL or REDIS_HOST")

// NewCacheConfig reads REDIS_URL, or REDIS_HOST/REDIS_PORT/REDIS_PASSWORD/REDIS_DB
// when no URL is given.
func NewCacheConfig() *pkgredis.Config {
	return &pkgredis.Config{
		URL:         sanitizeEnv(utils.GetEnvTrimmed("REDIS_URL")),
		Host:        utils.GetEnvTrimmed("REDIS_HOST"),
		Port:        utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password:    utils.GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:          utils.GetEnvPositiveInt("REDIS_DB", 0),
		DialTimeout: utils.GetEnvPositiveDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
	}
}

func cacheConfigured(cfg *pkgredis.Config) bool {
	return cfg != nil && (cfg.URL != "" || cfg.Host != "")
}

func NewCache(logger *log.Logger, cfg *pkgredis.Config) (Cache, error) {
	if !cacheConfigured(cfg) {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(cfg)
	if err != nil {
		logger.Error("Failed to connect to cache (Redis)", "error", err)
		return nil, err
	}

	logger.Info("Cache (Redis) connected successfully")
	return cache, nil
}

// NewCacheOrNil treats the cache as optional: without it every duplicate
// check goes to the store.
func NewCacheOrNil(logger *log.Logger, cfg *pkgredis.Config) Cache {
	if !cacheConfigured(cfg) {
		logger.Info("Cache (Redis) is not configured; duplicate checks go straight to the store")
		return nil
	}

	cache, err := NewCache(logger, cfg)
	if err != nil {
		logger.Warn("Continuing without cache", "error", err)
		return nil
	}
	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}

	logger.Info("Cache connection closed")
	return nil
}
