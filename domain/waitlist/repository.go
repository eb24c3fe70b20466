package waitlist

import (
	"context"
	"errors"

	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository_test.go -package=waitlist

// StoreHandle hands out the shared database handle, opening it on first use.
type StoreHandle interface {
	Acquire(ctx context.Context) (*gorm.DB, error)
}

type WaitlistRepository interface {
	// ExistsByEmail reports whether an entry with exactly this normalized email is stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// CreateEntry inserts the entry as given. A unique-index violation comes back as CONFLICT.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
}

type waitlistRepository struct {
	store StoreHandle
}

func NewWaitlistRepository(store StoreHandle) WaitlistRepository {
	return &waitlistRepository{store: store}
}

func (wr *waitlistRepository) acquire(ctx context.Context) (*gorm.DB, error) {
	db, err := wr.store.Acquire(ctx)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.NewConnectivityError("unable to reach waitlist store", err)
	}
	return db.WithContext(ctx), nil
}

func (wr *waitlistRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	db, err := wr.acquire(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&models.WaitlistEntry{}).Where("email = ?", email).Limit(1).Count(&count).Error; err != nil {
		return false, apperrors.NewDatabaseError("unable to look up waitlist entry", err)
	}

	return count > 0, nil
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	db, err := wr.acquire(ctx)
	if err != nil {
		return nil, err
	}

	if err := db.Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError(MessageAlreadyAdded, err)
		}
		return nil, apperrors.NewDatabaseError("unable to create waitlist entry", err)
	}

	return entry, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
