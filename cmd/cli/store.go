package main

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/store"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/retry"
	"github.com/akeren/waitlist-api/pkg/utils"
)

// connectStore opens the store, retrying while it is unreachable. Deploy jobs
// often start before the database accepts connections.
func connectStore(ctx context.Context, logger *log.Logger) (*store.Manager, error) {
	manager, err := config.NewStoreManager(logger, config.NewStoreConfig(), false)
	if err != nil {
		return nil, err
	}

	policy := retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: utils.GetEnvPositiveInt("CLI_CONNECT_ATTEMPTS", 5),
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Multiplier:  2.0,
		Retryable: func(err error) bool {
			return apperrors.GetErrorType(err) == apperrors.ErrorTypeConnectivity
		},
	})

	attempt := 0
	err = policy.Execute(ctx, func(ctx context.Context) error {
		attempt++
		if _, err := manager.Acquire(ctx); err != nil {
			logger.Warn("Store not reachable yet", "attempt", attempt, "error", err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return manager, nil
}

func closeStore(logger *log.Logger, manager *store.Manager) {
	if err := manager.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err.Error())
	}
}
