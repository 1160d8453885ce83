package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SubjectKind separates hotel and vehicle rate series so their ids never collide.
type SubjectKind string

const (
	SubjectHotel     SubjectKind = "hotel"
	SubjectTransport SubjectKind = "transport"
)

func (k SubjectKind) Valid() bool {
	return k == SubjectHotel || k == SubjectTransport
}

// AttributeKey partitions rate periods into independent series.
// Optional ids use 0 for "not applicable" (vehicle rates have no room type,
// occupancy or meal plan).
type AttributeKey struct {
	Kind            SubjectKind `json:"kind" gorm:"column:kind;type:varchar(16);not null;uniqueIndex:idx_rate_periods_key_start,priority:1,where:is_active = true;index:idx_rate_periods_lookup,priority:1"`
	SubjectID       int64       `json:"subject_id" gorm:"column:subject_id;not null;uniqueIndex:idx_rate_periods_key_start,priority:2;index:idx_rate_periods_lookup,priority:2"`
	RoomTypeID      int64       `json:"room_type_id,omitempty" gorm:"column:room_type_id;not null;default:0;uniqueIndex:idx_rate_periods_key_start,priority:3;index:idx_rate_periods_lookup,priority:3"`
	OccupancyTypeID int64       `json:"occupancy_type_id,omitempty" gorm:"column:occupancy_type_id;not null;default:0;uniqueIndex:idx_rate_periods_key_start,priority:4;index:idx_rate_periods_lookup,priority:4"`
	MealPlanID      int64       `json:"meal_plan_id,omitempty" gorm:"column:meal_plan_id;not null;default:0;uniqueIndex:idx_rate_periods_key_start,priority:5;index:idx_rate_periods_lookup,priority:5"`
}

// HotelKey builds the key of a room rate.
func HotelKey(hotelID, roomTypeID, occupancyTypeID, mealPlanID int64) AttributeKey {
	return AttributeKey{
		Kind:            SubjectHotel,
		SubjectID:       hotelID,
		RoomTypeID:      roomTypeID,
		OccupancyTypeID: occupancyTypeID,
		MealPlanID:      mealPlanID,
	}
}

// VehicleKey builds the key of a transport rate.
func VehicleKey(vehicleTypeID int64) AttributeKey {
	return AttributeKey{Kind: SubjectTransport, SubjectID: vehicleTypeID}
}

func (k AttributeKey) String() string {
	return fmt.Sprintf("%s:%d/rt:%d/occ:%d/mp:%d", k.Kind, k.SubjectID, k.RoomTypeID, k.OccupancyTypeID, k.MealPlanID)
}

// RatePeriod is a date-bounded price. StartDate and EndDate are inclusive
// UTC midnights.
type RatePeriod struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	AttributeKey `gorm:"embedded"`
	StartDate    time.Time       `json:"start_date" gorm:"type:date;not null;uniqueIndex:idx_rate_periods_key_start,priority:6;index:idx_rate_periods_lookup,priority:6"`
	EndDate      time.Time       `json:"end_date" gorm:"type:date;not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	IsActive     bool            `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (RatePeriod) TableName() string { return "rate_periods" }

// Covers reports whether the inclusive range contains date.
func (p RatePeriod) Covers(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Overlaps reports whether the inclusive ranges share at least one day.
func (p RatePeriod) Overlaps(start, end time.Time) bool {
	return !p.StartDate.After(end) && !p.EndDate.Before(start)
}

// RateKeyLock is the guard row writers of one attribute key lock inside
// their transaction. It holds no data besides the key.
type RateKeyLock struct {
	RateKey   string    `json:"rate_key" gorm:"column:rate_key;primaryKey;size:160"`
	CreatedAt time.Time `json:"created_at"`
}

func (RateKeyLock) TableName() string { return "rate_key_locks" }
