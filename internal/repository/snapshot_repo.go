package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourpricing/internal/domain"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// CurrentGeneration returns the generation readers of queryID see, 0 when
// the query has never been snapshotted.
func (r *SnapshotRepository) CurrentGeneration(ctx context.Context, queryID int64) (int64, error) {
	return r.generation(r.db.WithContext(ctx), queryID)
}

// LockGeneration is CurrentGeneration taking a row lock, for writers inside
// a transaction.
func (r *SnapshotRepository) LockGeneration(ctx context.Context, queryID int64) (int64, error) {
	return r.generation(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), queryID)
}

func (r *SnapshotRepository) generation(db *gorm.DB, queryID int64) (int64, error) {
	var g domain.SnapshotGeneration
	err := db.Where("query_id = ?", queryID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return g.Current, nil
}

// MaxGeneration returns the highest generation stored for queryID,
// including rows not yet published.
func (r *SnapshotRepository) MaxGeneration(ctx context.Context, queryID int64) (int64, error) {
	var maxGen sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&domain.VariantSnapshot{}).
		Select("MAX(generation)").
		Where("query_id = ?", queryID).
		Row().
		Scan(&maxGen)
	if err != nil {
		return 0, err
	}
	return maxGen.Int64, nil
}

func (r *SnapshotRepository) SetGeneration(ctx context.Context, queryID, generation int64) error {
	g := domain.SnapshotGeneration{QueryID: queryID, Current: generation, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "query_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current", "updated_at"}),
		}).
		Create(&g).Error
}

func (r *SnapshotRepository) ClearGeneration(ctx context.Context, queryID int64) error {
	return r.db.WithContext(ctx).Where("query_id = ?", queryID).Delete(&domain.SnapshotGeneration{}).Error
}

// Create inserts the snapshot together with its hotels, pricing and components.
func (r *SnapshotRepository) Create(ctx context.Context, s *domain.VariantSnapshot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// List loads one generation of a query with every owned row.
func (r *SnapshotRepository) List(ctx context.Context, queryID, generation int64) ([]domain.VariantSnapshot, error) {
	var out []domain.VariantSnapshot
	err := r.db.WithContext(ctx).
		Preload("Hotels", func(db *gorm.DB) *gorm.DB { return db.Order("day_number asc") }).
		Preload("Pricing", func(db *gorm.DB) *gorm.DB { return db.Order("start_date asc") }).
		Preload("Pricing.Components", func(db *gorm.DB) *gorm.DB { return db.Order("attribute_name asc") }).
		Where("query_id = ? AND generation = ?", queryID, generation).
		Order("sort_order asc, created_at asc").
		Find(&out).Error
	return out, err
}

// DeleteExcept removes every snapshot of queryID outside the kept
// generation, children first. keep = 0 removes all of them.
func (r *SnapshotRepository) DeleteExcept(ctx context.Context, queryID, keep int64) (int64, error) {
	db := r.db.WithContext(ctx)
	snaps := db.Model(&domain.VariantSnapshot{}).Select("id").Where("query_id = ? AND generation <> ?", queryID, keep)
	pricing := db.Model(&domain.PricingSnapshot{}).Select("id").Where("variant_snapshot_id IN (?)", snaps)

	if err := db.Where("pricing_snapshot_id IN (?)", pricing).Delete(&domain.PricingComponentSnapshot{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("variant_snapshot_id IN (?)", snaps).Delete(&domain.PricingSnapshot{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("variant_snapshot_id IN (?)", snaps).Delete(&domain.HotelSnapshot{}).Error; err != nil {
		return 0, err
	}
	res := db.Where("query_id = ? AND generation <> ?", queryID, keep).Delete(&domain.VariantSnapshot{})
	return res.RowsAffected, res.Error
}

// CountOrphans returns the number of hotel, pricing and component rows whose
// parent snapshot no longer exists.
func (r *SnapshotRepository) CountOrphans(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	var hotels, pricing, components int64

	if err := db.Model(&domain.HotelSnapshot{}).
		Where("variant_snapshot_id NOT IN (?)", db.Model(&domain.VariantSnapshot{}).Select("id")).
		Count(&hotels).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&domain.PricingSnapshot{}).
		Where("variant_snapshot_id NOT IN (?)", db.Model(&domain.VariantSnapshot{}).Select("id")).
		Count(&pricing).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&domain.PricingComponentSnapshot{}).
		Where("pricing_snapshot_id NOT IN (?)", db.Model(&domain.PricingSnapshot{}).Select("id")).
		Count(&components).Error; err != nil {
		return 0, err
	}
	return hotels + pricing + components, nil
}
