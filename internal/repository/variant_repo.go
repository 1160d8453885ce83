package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourpricing/internal/domain"
)

type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) CreateQuery(ctx context.Context, q *domain.Query) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *VariantRepository) GetQuery(ctx context.Context, id int64) (*domain.Query, error) {
	var q domain.Query
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, notFound(err, "query")
	}
	return &q, nil
}

// LockQuery loads the query taking a row lock held until the transaction
// ends. Writers of a query's snapshots serialize on it.
func (r *VariantRepository) LockQuery(ctx context.Context, id int64) (*domain.Query, error) {
	var q domain.Query
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&q, id).Error; err != nil {
		return nil, notFound(err, "query")
	}
	return &q, nil
}

func (r *VariantRepository) CreateVariant(ctx context.Context, v *domain.Variant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VariantRepository) GetVariant(ctx context.Context, id int64) (*domain.Variant, error) {
	var v domain.Variant
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFound(err, "variant")
	}
	return &v, nil
}

func (r *VariantRepository) ListVariantsByQuery(ctx context.Context, queryID int64) ([]domain.Variant, error) {
	var out []domain.Variant
	err := r.db.WithContext(ctx).
		Where("query_id = ?", queryID).
		Order("sort_order asc, id asc").
		Find(&out).Error
	return out, err
}

// ListDays returns the variant's days with allocations, ordered by day number.
func (r *VariantRepository) ListDays(ctx context.Context, variantID int64) ([]domain.VariantDay, error) {
	var out []domain.VariantDay
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Transports", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("variant_id = ?", variantID).
		Order("day_number asc").
		Find(&out).Error
	return out, err
}

// DeleteDay removes a day and its allocations. Children are deleted
// explicitly so no orphans depend on the driver enforcing foreign keys.
func (r *VariantRepository) DeleteDay(ctx context.Context, variantID int64, dayNumber int) error {
	db := r.db.WithContext(ctx)
	sub := db.Model(&domain.VariantDay{}).Select("id").Where("variant_id = ? AND day_number = ?", variantID, dayNumber)

	if err := db.Where("variant_day_id IN (?)", sub).Delete(&domain.VariantRoomAllocation{}).Error; err != nil {
		return err
	}
	if err := db.Where("variant_day_id IN (?)", sub).Delete(&domain.VariantTransport{}).Error; err != nil {
		return err
	}
	return db.Where("variant_id = ? AND day_number = ?", variantID, dayNumber).Delete(&domain.VariantDay{}).Error
}

// CreateDay inserts a day together with its allocations.
func (r *VariantRepository) CreateDay(ctx context.Context, day *domain.VariantDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *VariantRepository) ListPricing(ctx context.Context, variantID int64) ([]domain.VariantPricing, error) {
	var out []domain.VariantPricing
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("variant_id = ?", variantID).
		Order("start_date asc, id asc").
		Find(&out).Error
	return out, err
}

func (r *VariantRepository) DeletePricing(ctx context.Context, variantID int64) error {
	db := r.db.WithContext(ctx)
	sub := db.Model(&domain.VariantPricing{}).Select("id").Where("variant_id = ?", variantID)
	if err := db.Where("variant_pricing_id IN (?)", sub).Delete(&domain.VariantPricingComponent{}).Error; err != nil {
		return err
	}
	return db.Where("variant_id = ?", variantID).Delete(&domain.VariantPricing{}).Error
}

func (r *VariantRepository) CreatePricing(ctx context.Context, periods []domain.VariantPricing) error {
	if len(periods) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&periods).Error
}
