package rates

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tourpricing/internal/domain"
	"tourpricing/internal/repository"
)

// CoveringFinder is the read side the resolver needs.
type CoveringFinder interface {
	FindCovering(ctx context.Context, key domain.AttributeKey, date time.Time) ([]domain.RatePeriod, error)
}

// PeriodRepository is the storage the rate store works against.
type PeriodRepository interface {
	CoveringFinder
	// LockKey serializes writers of key until the transaction ends.
	LockKey(ctx context.Context, key domain.AttributeKey) error
	FindOverlapping(ctx context.Context, key domain.AttributeKey, start, end time.Time) ([]domain.RatePeriod, error)
	ListByKey(ctx context.Context, key domain.AttributeKey, includeInactive bool) ([]domain.RatePeriod, error)
	GetByID(ctx context.Context, id int64) (*domain.RatePeriod, error)
	DeleteActive(ctx context.Context, ids []int64) (int64, error)
	CreateBatch(ctx context.Context, periods []domain.RatePeriod) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
}

func defaultRepo(db *gorm.DB) PeriodRepository {
	return repository.NewRatePeriodRepository(db)
}
