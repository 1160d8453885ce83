package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourpricing/internal/domain"
)

type RatePeriodRepository struct {
	db *gorm.DB
}

func NewRatePeriodRepository(db *gorm.DB) *RatePeriodRepository {
	return &RatePeriodRepository{db: db}
}

func whereKey(db *gorm.DB, key domain.AttributeKey) *gorm.DB {
	return db.Where(
		"kind = ? AND subject_id = ? AND room_type_id = ? AND occupancy_type_id = ? AND meal_plan_id = ?",
		key.Kind, key.SubjectID, key.RoomTypeID, key.OccupancyTypeID, key.MealPlanID,
	)
}

// LockKey takes the row lock guarding key for the rest of the transaction,
// creating the guard row on first use. Writers of the same key in other
// processes block here until the holder commits.
func (r *RatePeriodRepository) LockKey(ctx context.Context, key domain.AttributeKey) error {
	db := r.db.WithContext(ctx)
	guard := domain.RateKeyLock{RateKey: key.String()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&guard).Error; err != nil {
		return err
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("rate_key = ?", guard.RateKey).First(&guard).Error
}

// FindOverlapping returns active periods of key sharing a day with [start, end].
func (r *RatePeriodRepository) FindOverlapping(ctx context.Context, key domain.AttributeKey, start, end time.Time) ([]domain.RatePeriod, error) {
	var out []domain.RatePeriod
	err := whereKey(r.db.WithContext(ctx), key).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, end, start).
		Order("start_date asc").
		Find(&out).Error
	return out, err
}

// FindCovering returns active periods of key whose range contains date.
func (r *RatePeriodRepository) FindCovering(ctx context.Context, key domain.AttributeKey, date time.Time) ([]domain.RatePeriod, error) {
	return r.FindOverlapping(ctx, key, date, date)
}

func (r *RatePeriodRepository) ListByKey(ctx context.Context, key domain.AttributeKey, includeInactive bool) ([]domain.RatePeriod, error) {
	q := whereKey(r.db.WithContext(ctx), key)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []domain.RatePeriod
	err := q.Order("start_date asc").Find(&out).Error
	return out, err
}

func (r *RatePeriodRepository) GetByID(ctx context.Context, id int64) (*domain.RatePeriod, error) {
	var p domain.RatePeriod
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "rate period")
	}
	return &p, nil
}

// DeleteActive hard-deletes the given active periods and reports how many
// rows went away.
func (r *RatePeriodRepository) DeleteActive(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Delete(&domain.RatePeriod{})
	return res.RowsAffected, res.Error
}

func (r *RatePeriodRepository) CreateBatch(ctx context.Context, periods []domain.RatePeriod) error {
	if len(periods) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&periods).Error
}

func (r *RatePeriodRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.RatePeriod{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "rate period")
	}
	return nil
}

func (r *RatePeriodRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&domain.RatePeriod{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "rate period")
	}
	return nil
}
