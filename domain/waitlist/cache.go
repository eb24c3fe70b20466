package waitlist

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
)

const seenEmailKeyPrefix = "waitlist:email:"

//go:generate mockgen -source=cache.go -destination=mock_cache_test.go -package=waitlist

// SeenCache is the slice of the shared cache the repository decorator needs.
type SeenCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// cachedRepository remembers emails known to be stored so repeat submissions
// skip the database. Only positive answers are cached, and cache failures fall
// through to the wrapped repository.
type cachedRepository struct {
	next   WaitlistRepository
	cache  SeenCache
	ttl    time.Duration
	logger *log.Logger
}

// NewCachedWaitlistRepository returns next unchanged when cache is nil.
func NewCachedWaitlistRepository(next WaitlistRepository, cache SeenCache, ttl time.Duration, logger *log.Logger) WaitlistRepository {
	if cache == nil {
		return next
	}
	return &cachedRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

func seenEmailKey(email string) string {
	return seenEmailKeyPrefix + email
}

func (cr *cachedRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, cr.logger)

	value, err := cr.cache.Get(ctx, seenEmailKey(email))
	switch {
	case err != nil:
		logger.Warn("Seen-email cache lookup failed; asking the store", "error", err)
	case value != "":
		logger.Debug("Seen-email cache hit")
		return true, nil
	}

	exists, err := cr.next.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	if exists {
		cr.remember(ctx, logger, email)
	}
	return exists, nil
}

func (cr *cachedRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	created, err := cr.next.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	cr.remember(ctx, log.GetLoggerInstanceFromContext(ctx, cr.logger), created.Email)
	return created, nil
}

func (cr *cachedRepository) remember(ctx context.Context, logger *log.Logger, email string) {
	if err := cr.cache.Set(ctx, seenEmailKey(email), "1", cr.ttl); err != nil {
		logger.Warn("Failed to record email in seen-email cache", "error", err)
	}
}
