package quote

import (
	"github.com/shopspring/decimal"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
	"tourpricing/internal/pkg/validator"
)

type RoomRequest struct {
	RoomTypeID      int64    `json:"room_type_id" validate:"required,gt=0"`
	OccupancyTypeID int64    `json:"occupancy_type_id" validate:"required,gt=0"`
	MealPlanID      int64    `json:"meal_plan_id" validate:"required,gt=0"`
	Quantity        int      `json:"quantity" validate:"required,gt=0"`
	GuestNames      []string `json:"guest_names" validate:"omitempty,dive,max=255"`
}

type TransportRequest struct {
	AssignmentID  string `json:"assignment_id" validate:"max=64"`
	VehicleTypeID int64  `json:"vehicle_type_id" validate:"required,gt=0"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	BillingMode   string `json:"billing_mode" validate:"required,oneof=per_day per_trip"`
}

// DayRequest is the wire form of one itinerary day.
type DayRequest struct {
	DayNumber    int                `json:"day_number" validate:"required,gte=1"`
	Date         string             `json:"date" validate:"required"`
	HotelID      int64              `json:"hotel_id" validate:"gte=0"`
	StaySpanDays int                `json:"stay_span_days" validate:"gte=0,lte=365"`
	Rooms        []RoomRequest      `json:"rooms" validate:"dive"`
	Transports   []TransportRequest `json:"transports" validate:"dive"`
}

// Assignment validates the day and converts it to the core type.
func (r DayRequest) Assignment() (domain.ItineraryDayAssignment, error) {
	if err := validator.Struct(r); err != nil {
		return domain.ItineraryDayAssignment{}, err
	}
	date, err := dates.Parse(r.Date)
	if err != nil {
		return domain.ItineraryDayAssignment{}, apperr.Validation("date", err.Error())
	}

	out := domain.ItineraryDayAssignment{
		DayNumber:    r.DayNumber,
		Date:         date,
		SubjectID:    r.HotelID,
		StaySpanDays: r.StaySpanDays,
	}
	for _, room := range r.Rooms {
		out.Rooms = append(out.Rooms, domain.RoomAllocation{
			RoomTypeID:      room.RoomTypeID,
			OccupancyTypeID: room.OccupancyTypeID,
			MealPlanID:      room.MealPlanID,
			Quantity:        room.Quantity,
			GuestNames:      room.GuestNames,
		})
	}
	for _, t := range r.Transports {
		out.Transports = append(out.Transports, domain.TransportAssignment{
			AssignmentID:  t.AssignmentID,
			VehicleTypeID: t.VehicleTypeID,
			Quantity:      t.Quantity,
			BillingMode:   domain.BillingMode(t.BillingMode),
		})
	}
	return out, nil
}

type QuoteRequest struct {
	MarkupPercentage *decimal.Decimal `json:"markup_percentage"`
	Days             []DayRequest     `json:"days" validate:"required,min=1,dive"`
}

// Itinerary validates the request and returns the core itinerary.
func (r QuoteRequest) Itinerary() ([]domain.ItineraryDayAssignment, error) {
	if err := validator.Struct(r); err != nil {
		return nil, err
	}
	days := make([]domain.ItineraryDayAssignment, 0, len(r.Days))
	for _, d := range r.Days {
		a, err := d.Assignment()
		if err != nil {
			return nil, err
		}
		days = append(days, a)
	}
	return days, nil
}
