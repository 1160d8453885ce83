package variant

import (
	"context"

	"gorm.io/gorm"

	"tourpricing/internal/domain"
	"tourpricing/internal/repository"
)

// Repository is the storage of queries, variants and their live itinerary.
type Repository interface {
	CreateQuery(ctx context.Context, q *domain.Query) error
	GetQuery(ctx context.Context, id int64) (*domain.Query, error)
	CreateVariant(ctx context.Context, v *domain.Variant) error
	GetVariant(ctx context.Context, id int64) (*domain.Variant, error)
	ListVariantsByQuery(ctx context.Context, queryID int64) ([]domain.Variant, error)
	ListDays(ctx context.Context, variantID int64) ([]domain.VariantDay, error)
	DeleteDay(ctx context.Context, variantID int64, dayNumber int) error
	CreateDay(ctx context.Context, day *domain.VariantDay) error
	ListPricing(ctx context.Context, variantID int64) ([]domain.VariantPricing, error)
	DeletePricing(ctx context.Context, variantID int64) error
	CreatePricing(ctx context.Context, periods []domain.VariantPricing) error
}

func defaultRepo(db *gorm.DB) Repository {
	return repository.NewVariantRepository(db)
}
