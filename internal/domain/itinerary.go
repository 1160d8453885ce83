package domain

import "time"

// BillingMode decides how often a transport assignment is charged.
type BillingMode string

const (
	BillingPerDay  BillingMode = "per_day"
	BillingPerTrip BillingMode = "per_trip"
)

func (m BillingMode) Valid() bool {
	return m == BillingPerDay || m == BillingPerTrip
}

type RoomAllocation struct {
	RoomTypeID      int64    `json:"room_type_id"`
	OccupancyTypeID int64    `json:"occupancy_type_id"`
	MealPlanID      int64    `json:"meal_plan_id"`
	Quantity        int      `json:"quantity"`
	GuestNames      []string `json:"guest_names,omitempty"`
}

type TransportAssignment struct {
	// AssignmentID groups per-trip charges across consecutive days. When
	// empty the vehicle type alone identifies the assignment.
	AssignmentID  string      `json:"assignment_id,omitempty"`
	VehicleTypeID int64       `json:"vehicle_type_id"`
	Quantity      int         `json:"quantity"`
	BillingMode   BillingMode `json:"billing_mode"`
}

// ItineraryDayAssignment is one day of a trip. SubjectID is the hotel, 0
// when the day has no accommodation.
type ItineraryDayAssignment struct {
	DayNumber    int                   `json:"day_number"`
	Date         time.Time             `json:"date"`
	SubjectID    int64                 `json:"subject_id,omitempty"`
	StaySpanDays int                   `json:"stay_span_days,omitempty"`
	Rooms        []RoomAllocation      `json:"rooms,omitempty"`
	Transports   []TransportAssignment `json:"transports,omitempty"`
}

// Nights returns the stay span, defaulting to one night.
func (d ItineraryDayAssignment) Nights() int {
	if d.StaySpanDays <= 0 {
		return 1
	}
	return d.StaySpanDays
}
