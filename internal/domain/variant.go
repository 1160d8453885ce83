package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Query is a customer trip request; it owns variants.
type Query struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Variant is one priced alternative of a query.
type Variant struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	QueryID          int64           `json:"query_id" gorm:"not null;index"`
	Name             string          `json:"name" gorm:"size:255;not null"`
	Description      string          `json:"description" gorm:"type:text"`
	IsDefault        bool            `json:"is_default" gorm:"not null"`
	SortOrder        int             `json:"sort_order" gorm:"not null"`
	PriceModifier    decimal.Decimal `json:"price_modifier" gorm:"type:decimal(12,2);not null"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage" gorm:"type:decimal(7,3);not null"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Query *Query `json:"-" gorm:"foreignKey:QueryID;constraint:OnDelete:CASCADE"`
}

// VariantDay is the stored form of an ItineraryDayAssignment. It is only
// ever replaced as a whole.
type VariantDay struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	VariantID    int64     `json:"variant_id" gorm:"not null;uniqueIndex:idx_variant_days_day,priority:1"`
	DayNumber    int       `json:"day_number" gorm:"not null;uniqueIndex:idx_variant_days_day,priority:2"`
	Date         time.Time `json:"date" gorm:"type:date;not null"`
	HotelID      *int64    `json:"hotel_id,omitempty"`
	StaySpanDays int       `json:"stay_span_days" gorm:"not null"`

	Rooms      []VariantRoomAllocation `json:"rooms" gorm:"foreignKey:VariantDayID;constraint:OnDelete:CASCADE"`
	Transports []VariantTransport      `json:"transports" gorm:"foreignKey:VariantDayID;constraint:OnDelete:CASCADE"`
	Variant    *Variant                `json:"-" gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}

type VariantRoomAllocation struct {
	ID              int64                       `json:"id" gorm:"primaryKey"`
	VariantDayID    int64                       `json:"variant_day_id" gorm:"not null;index"`
	RoomTypeID      int64                       `json:"room_type_id" gorm:"not null"`
	OccupancyTypeID int64                       `json:"occupancy_type_id" gorm:"not null"`
	MealPlanID      int64                       `json:"meal_plan_id" gorm:"not null"`
	Quantity        int                         `json:"quantity" gorm:"not null"`
	GuestNames      datatypes.JSONSlice[string] `json:"guest_names"`
}

type VariantTransport struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	VariantDayID  int64       `json:"variant_day_id" gorm:"not null;index"`
	AssignmentID  string      `json:"assignment_id" gorm:"size:64"`
	VehicleTypeID int64       `json:"vehicle_type_id" gorm:"not null"`
	Quantity      int         `json:"quantity" gorm:"not null"`
	BillingMode   BillingMode `json:"billing_mode" gorm:"type:varchar(16);not null"`
}

// ToAssignment converts the stored day into the core itinerary type.
func (d VariantDay) ToAssignment() ItineraryDayAssignment {
	out := ItineraryDayAssignment{
		DayNumber:    d.DayNumber,
		Date:         d.Date,
		StaySpanDays: d.StaySpanDays,
	}
	if d.HotelID != nil {
		out.SubjectID = *d.HotelID
	}
	for _, r := range d.Rooms {
		out.Rooms = append(out.Rooms, RoomAllocation{
			RoomTypeID:      r.RoomTypeID,
			OccupancyTypeID: r.OccupancyTypeID,
			MealPlanID:      r.MealPlanID,
			Quantity:        r.Quantity,
			GuestNames:      []string(r.GuestNames),
		})
	}
	for _, t := range d.Transports {
		out.Transports = append(out.Transports, TransportAssignment{
			AssignmentID:  t.AssignmentID,
			VehicleTypeID: t.VehicleTypeID,
			Quantity:      t.Quantity,
			BillingMode:   t.BillingMode,
		})
	}
	return out
}

// VariantPricing is a live pricing period of a variant made of named components.
type VariantPricing struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	VariantID     int64     `json:"variant_id" gorm:"not null;index"`
	StartDate     time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate       time.Time `json:"end_date" gorm:"type:date;not null"`
	MealPlanID    *int64    `json:"meal_plan_id,omitempty"`
	NumberOfRooms int       `json:"number_of_rooms" gorm:"not null"`
	VehicleTypeID *int64    `json:"vehicle_type_id,omitempty"`

	Components []VariantPricingComponent `json:"components" gorm:"foreignKey:VariantPricingID;constraint:OnDelete:CASCADE"`
	Variant    *Variant                  `json:"-" gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}

type VariantPricingComponent struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	VariantPricingID int64           `json:"variant_pricing_id" gorm:"not null;index"`
	AttributeName    string          `json:"attribute_name" gorm:"size:255;not null"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" gorm:"type:decimal(12,2);not null"`
	Description      string          `json:"description" gorm:"type:text"`
}
