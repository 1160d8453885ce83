package snapshot

import (
	"context"

	"gorm.io/gorm"

	"tourpricing/internal/domain"
	"tourpricing/internal/repository"
)

type Store interface {
	CurrentGeneration(ctx context.Context, queryID int64) (int64, error)
	LockGeneration(ctx context.Context, queryID int64) (int64, error)
	MaxGeneration(ctx context.Context, queryID int64) (int64, error)
	SetGeneration(ctx context.Context, queryID, generation int64) error
	ClearGeneration(ctx context.Context, queryID int64) error
	Create(ctx context.Context, s *domain.VariantSnapshot) error
	List(ctx context.Context, queryID, generation int64) ([]domain.VariantSnapshot, error)
	DeleteExcept(ctx context.Context, queryID, keep int64) (int64, error)
	CountOrphans(ctx context.Context) (int64, error)
}

// VariantReader is the live variant data a snapshot copies.
type VariantReader interface {
	// LockQuery serializes snapshot writers of a query until the
	// transaction ends.
	LockQuery(ctx context.Context, id int64) (*domain.Query, error)
	GetVariant(ctx context.Context, id int64) (*domain.Variant, error)
	ListDays(ctx context.Context, variantID int64) ([]domain.VariantDay, error)
	ListPricing(ctx context.Context, variantID int64) ([]domain.VariantPricing, error)
}

// CatalogReader resolves display names denormalized into snapshots.
type CatalogReader interface {
	HotelsByID(ctx context.Context, ids []int64) (map[int64]domain.Hotel, error)
	MealPlanNames(ctx context.Context, ids []int64) (map[int64]string, error)
	VehicleTypeNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

// Repos are the repositories one snapshot pass works with, all bound to the
// same connection or transaction.
type Repos struct {
	Snapshots Store
	Variants  VariantReader
	Catalog   CatalogReader
}

func defaultRepos(db *gorm.DB) Repos {
	return Repos{
		Snapshots: repository.NewSnapshotRepository(db),
		Variants:  repository.NewVariantRepository(db),
		Catalog:   repository.NewCatalogRepository(db),
	}
}
