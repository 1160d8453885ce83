package quote

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
)

// ValidateItinerary fails fast on input the aggregator must not price.
func ValidateItinerary(days []domain.ItineraryDayAssignment, markup decimal.Decimal) error {
	if len(days) == 0 {
		return apperr.Validation("days", "itinerary must contain at least one day")
	}
	if markup.IsNegative() {
		return apperr.Validation("markup_percentage", "markup must not be negative")
	}

	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if err := validateDay(d); err != nil {
			return err
		}
		if seen[d.DayNumber] {
			return apperr.Validation("day_number", fmt.Sprintf("day %d appears more than once", d.DayNumber))
		}
		seen[d.DayNumber] = true
	}
	if err := validateCalendar(days); err != nil {
		return err
	}
	return validateStaySpans(days)
}

// validateCalendar requires day N to fall N-1 days after day 1, anchored on
// the lowest numbered day given.
func validateCalendar(days []domain.ItineraryDayAssignment) error {
	first := days[0]
	for _, d := range days[1:] {
		if d.DayNumber < first.DayNumber {
			first = d
		}
	}
	for _, d := range days {
		want := dates.AddDays(first.Date, d.DayNumber-first.DayNumber)
		if !d.Date.Equal(want) {
			return apperr.Validation(fmt.Sprintf("days[%d].date", d.DayNumber),
				fmt.Sprintf("day %d must fall on %s", d.DayNumber, dates.Format(want)))
		}
	}
	return nil
}

func validateDay(d domain.ItineraryDayAssignment) error {
	field := func(name string) string { return fmt.Sprintf("days[%d].%s", d.DayNumber, name) }

	if d.DayNumber < 1 {
		return apperr.Validation("day_number", "day numbers start at 1")
	}
	if d.Date.IsZero() || !dates.IsNormalized(d.Date) {
		return apperr.Validation(field("date"), "date must be a calendar date")
	}
	if d.StaySpanDays < 0 {
		return apperr.Validation(field("stay_span_days"), "stay span must not be negative")
	}
	if d.SubjectID < 0 {
		return apperr.Validation(field("subject_id"), "subject_id must not be negative")
	}
	if d.SubjectID == 0 && len(d.Transports) == 0 {
		return apperr.Validation(field("subject_id"), "day has neither a hotel nor transport")
	}
	if d.SubjectID == 0 && len(d.Rooms) > 0 {
		return apperr.Validation(field("rooms"), "rooms need a hotel")
	}

	for i, r := range d.Rooms {
		if r.Quantity <= 0 {
			return apperr.Validation(field(fmt.Sprintf("rooms[%d].quantity", i)), "quantity must be positive")
		}
		if r.RoomTypeID <= 0 || r.OccupancyTypeID <= 0 || r.MealPlanID <= 0 {
			return apperr.Validation(field(fmt.Sprintf("rooms[%d]", i)), "room_type_id, occupancy_type_id and meal_plan_id are required")
		}
	}

	trips := make(map[tripIdentity]bool)
	for i, t := range d.Transports {
		if t.Quantity <= 0 {
			return apperr.Validation(field(fmt.Sprintf("transports[%d].quantity", i)), "quantity must be positive")
		}
		if t.VehicleTypeID <= 0 {
			return apperr.Validation(field(fmt.Sprintf("transports[%d].vehicle_type_id", i)), "vehicle_type_id is required")
		}
		if !t.BillingMode.Valid() {
			return apperr.Validation(field(fmt.Sprintf("transports[%d].billing_mode", i)), "billing mode must be per_day or per_trip")
		}
		if t.BillingMode == domain.BillingPerTrip {
			id := identityOf(t)
			if trips[id] {
				return apperr.Validation(field(fmt.Sprintf("transports[%d]", i)), "per-trip assignment listed twice on the same day")
			}
			trips[id] = true
		}
	}
	return nil
}

// validateStaySpans rejects hotel stays whose nights run into the next
// hotel day.
func validateStaySpans(days []domain.ItineraryDayAssignment) error {
	stays := make([]domain.ItineraryDayAssignment, 0, len(days))
	for _, d := range days {
		if d.SubjectID != 0 {
			stays = append(stays, d)
		}
	}
	sort.Slice(stays, func(i, j int) bool { return stays[i].DayNumber < stays[j].DayNumber })

	for i := 1; i < len(stays); i++ {
		prev := stays[i-1]
		lastNight := prev.DayNumber + prev.Nights() - 1
		if stays[i].DayNumber <= lastNight {
			return apperr.Validation("stay_span_days",
				fmt.Sprintf("stay starting on day %d overlaps the stay starting on day %d", prev.DayNumber, stays[i].DayNumber))
		}
	}
	return nil
}
