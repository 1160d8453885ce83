package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomLine is one room allocation priced for one night.
type RoomLine struct {
	Date            time.Time       `json:"date"`
	RoomTypeID      int64           `json:"room_type_id"`
	OccupancyTypeID int64           `json:"occupancy_type_id"`
	MealPlanID      int64           `json:"meal_plan_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	RatePeriodID    int64           `json:"rate_period_id,omitempty"`
	Warning         string          `json:"warning,omitempty"`
}

type TransportLine struct {
	VehicleTypeID int64           `json:"vehicle_type_id"`
	AssignmentID  string          `json:"assignment_id,omitempty"`
	BillingMode   BillingMode     `json:"billing_mode"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	// ChargedOnDay points at the day that carries a per-trip charge when
	// this line is covered by it.
	ChargedOnDay int    `json:"charged_on_day,omitempty"`
	Warning      string `json:"warning,omitempty"`
}

type CostBreakdownLine struct {
	DayNumber      int             `json:"day_number"`
	Date           time.Time       `json:"date"`
	SubjectID      int64           `json:"subject_id,omitempty"`
	RoomLines      []RoomLine      `json:"room_lines"`
	TransportLines []TransportLine `json:"transport_lines"`
	DayTotal       decimal.Decimal `json:"day_total"`
}

type PricingResult struct {
	AccommodationTotal decimal.Decimal     `json:"accommodation_total"`
	TransportTotal     decimal.Decimal     `json:"transport_total"`
	BasePrice          decimal.Decimal     `json:"base_price"`
	MarkupPercentage   decimal.Decimal     `json:"markup_percentage"`
	MarkupAmount       decimal.Decimal     `json:"markup_amount"`
	TotalCost          decimal.Decimal     `json:"total_cost"`
	Breakdown          []CostBreakdownLine `json:"breakdown"`
	Warnings           []string            `json:"warnings,omitempty"`
}
