package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SnapshotGeneration points at the snapshot generation readers of a query
// see. Replacing snapshots writes a new generation and moves the pointer in
// the same transaction.
type SnapshotGeneration struct {
	QueryID   int64     `json:"query_id" gorm:"primaryKey;autoIncrement:false"`
	Current   int64     `json:"current" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SnapshotGeneration) TableName() string { return "snapshot_generations" }

// VariantSnapshot is an immutable copy of a variant. It is never updated:
// refreshing deletes and recreates it.
type VariantSnapshot struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	QueryID          int64           `json:"query_id" gorm:"not null;index:idx_variant_snapshots_generation,priority:1"`
	Generation       int64           `json:"generation" gorm:"not null;index:idx_variant_snapshots_generation,priority:2"`
	SourceVariantID  int64           `json:"source_variant_id" gorm:"not null;index"`
	Name             string          `json:"name" gorm:"size:255;not null"`
	Description      string          `json:"description" gorm:"type:text"`
	IsDefault        bool            `json:"is_default" gorm:"not null"`
	SortOrder        int             `json:"sort_order" gorm:"not null"`
	PriceModifier    decimal.Decimal `json:"price_modifier" gorm:"type:decimal(12,2);not null"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage" gorm:"type:decimal(7,3);not null"`
	CreatedAt        time.Time       `json:"created_at"`

	Hotels  []HotelSnapshot   `json:"hotels" gorm:"foreignKey:VariantSnapshotID;constraint:OnDelete:CASCADE"`
	Pricing []PricingSnapshot `json:"pricing" gorm:"foreignKey:VariantSnapshotID;constraint:OnDelete:CASCADE"`
}

func (s *VariantSnapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type HotelSnapshot struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VariantSnapshotID uuid.UUID `json:"variant_snapshot_id" gorm:"type:uuid;not null;index"`
	DayNumber         int       `json:"day_number" gorm:"not null"`
	HotelID           int64     `json:"hotel_id" gorm:"not null"`
	HotelName         string    `json:"hotel_name" gorm:"size:255"`
	LocationLabel     string    `json:"location_label" gorm:"size:255"`
	ImageURL          string    `json:"image_url" gorm:"size:1024"`
}

func (s *HotelSnapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type PricingSnapshot struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	VariantSnapshotID uuid.UUID       `json:"variant_snapshot_id" gorm:"type:uuid;not null;index"`
	StartDate         time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate           time.Time       `json:"end_date" gorm:"type:date;not null"`
	MealPlanName      string          `json:"meal_plan_name" gorm:"size:255"`
	NumberOfRooms     int             `json:"number_of_rooms" gorm:"not null"`
	VehicleTypeName   string          `json:"vehicle_type_name" gorm:"size:255"`
	TotalPrice        decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`

	Components []PricingComponentSnapshot `json:"components" gorm:"foreignKey:PricingSnapshotID;constraint:OnDelete:CASCADE"`
}

func (s *PricingSnapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type PricingComponentSnapshot struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	PricingSnapshotID uuid.UUID       `json:"pricing_snapshot_id" gorm:"type:uuid;not null;index"`
	AttributeName     string          `json:"attribute_name" gorm:"size:255;not null"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	PurchasePrice     decimal.Decimal `json:"purchase_price" gorm:"type:decimal(12,2);not null"`
	Description       string          `json:"description" gorm:"type:text"`
}

func (s *PricingComponentSnapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
