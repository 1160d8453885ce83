package rates

import (
	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
	"tourpricing/internal/pkg/money"
)

// ValidateKey checks that key names a complete series.
func ValidateKey(key domain.AttributeKey) error {
	if !key.Kind.Valid() {
		return apperr.Validation("kind", "kind must be hotel or transport")
	}
	if key.SubjectID <= 0 {
		return apperr.Validation("subject_id", "subject_id is required")
	}
	if key.RoomTypeID < 0 || key.OccupancyTypeID < 0 || key.MealPlanID < 0 {
		return apperr.Validation("key", "attribute ids must not be negative")
	}
	if key.Kind == domain.SubjectHotel && (key.RoomTypeID == 0 || key.OccupancyTypeID == 0 || key.MealPlanID == 0) {
		return apperr.Validation("key", "hotel rates need room_type_id, occupancy_type_id and meal_plan_id")
	}
	if key.Kind == domain.SubjectTransport && (key.RoomTypeID != 0 || key.OccupancyTypeID != 0 || key.MealPlanID != 0) {
		return apperr.Validation("key", "transport rates carry only the vehicle type")
	}
	return nil
}

// ValidatePeriod rejects periods that must never reach the store.
func ValidatePeriod(p domain.RatePeriod, precision int32) error {
	if err := ValidateKey(p.AttributeKey); err != nil {
		return err
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return apperr.Validation("dates", "start_date and end_date are required")
	}
	if !dates.IsNormalized(p.StartDate) || !dates.IsNormalized(p.EndDate) {
		return apperr.Validation("dates", "dates must be calendar dates without time of day")
	}
	if p.EndDate.Before(p.StartDate) {
		return apperr.Validation("end_date", "end_date must not be before start_date")
	}
	if p.Price.IsNegative() {
		return apperr.Validation("price", "price must not be negative")
	}
	if !money.HasPrecision(p.Price, precision) {
		return apperr.Validation("price", "price has more fractional digits than the currency allows")
	}
	return nil
}
