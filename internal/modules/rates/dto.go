package rates

import (
	"github.com/shopspring/decimal"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
)

type KeyRequest struct {
	Kind            string `json:"kind" form:"kind" binding:"required,oneof=hotel transport"`
	SubjectID       int64  `json:"subject_id" form:"subject_id" binding:"required,gt=0"`
	RoomTypeID      int64  `json:"room_type_id" form:"room_type_id" binding:"gte=0"`
	OccupancyTypeID int64  `json:"occupancy_type_id" form:"occupancy_type_id" binding:"gte=0"`
	MealPlanID      int64  `json:"meal_plan_id" form:"meal_plan_id" binding:"gte=0"`
}

func (r KeyRequest) Key() domain.AttributeKey {
	return domain.AttributeKey{
		Kind:            domain.SubjectKind(r.Kind),
		SubjectID:       r.SubjectID,
		RoomTypeID:      r.RoomTypeID,
		OccupancyTypeID: r.OccupancyTypeID,
		MealPlanID:      r.MealPlanID,
	}
}

type InsertPeriodRequest struct {
	KeyRequest
	StartDate string          `json:"start_date" binding:"required"`
	EndDate   string          `json:"end_date" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	DryRun    bool            `json:"dry_run"`
}

// Period converts the request into a normalized rate period.
func (r InsertPeriodRequest) Period() (domain.RatePeriod, error) {
	start, err := dates.Parse(r.StartDate)
	if err != nil {
		return domain.RatePeriod{}, apperr.Validation("start_date", err.Error())
	}
	end, err := dates.Parse(r.EndDate)
	if err != nil {
		return domain.RatePeriod{}, apperr.Validation("end_date", err.Error())
	}
	return domain.RatePeriod{
		AttributeKey: r.Key(),
		StartDate:    start,
		EndDate:      end,
		Price:        r.Price,
		IsActive:     true,
	}, nil
}

type ResolveRequest struct {
	KeyRequest
	Date string `form:"date" binding:"required"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
