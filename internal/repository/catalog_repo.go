package repository

import (
	"context"

	"gorm.io/gorm"

	"tourpricing/internal/domain"
)

// CatalogRepository is a read-only view over catalog names.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) HotelsByID(ctx context.Context, ids []int64) (map[int64]domain.Hotel, error) {
	out := make(map[int64]domain.Hotel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Hotel
	if err := r.db.WithContext(ctx).Preload("Location").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, h := range rows {
		out[h.ID] = h
	}
	return out, nil
}

func (r *CatalogRepository) MealPlanNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	return r.names(ctx, &domain.MealPlan{}, ids)
}

func (r *CatalogRepository) VehicleTypeNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	return r.names(ctx, &domain.VehicleType{}, ids)
}

func (r *CatalogRepository) names(ctx context.Context, model any, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID   int64
		Name string
	}
	if err := r.db.WithContext(ctx).Model(model).Select("id, name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}
