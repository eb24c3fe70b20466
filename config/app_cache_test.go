package config

import (
	"testing"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestNewCache_NotConfigured(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "")

	_, err := NewCache(log.NewLoggerWithJSONOutput(), NewCacheConfig())
	assert.ErrorIs(t, err, ErrCacheNotConfigured)
	assert.Nil(t, NewCacheOrNil(log.NewLoggerWithJSONOutput(), NewCacheConfig()))
}

func TestNewCacheOrNil_UnreachableRedisIsSkipped(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1/0")
	t.Setenv("REDIS_DIAL_TIMEOUT", "200ms")

	assert.Nil(t, NewCacheOrNil(log.NewLoggerWithJSONOutput(), NewCacheConfig()))
}
