package variant

import (
	"github.com/shopspring/decimal"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
	"tourpricing/internal/pkg/validator"
)

type CreateQueryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateVariantRequest struct {
	Name             string          `json:"name" validate:"required,max=255"`
	Description      string          `json:"description"`
	IsDefault        bool            `json:"is_default"`
	SortOrder        int             `json:"sort_order" validate:"gte=0"`
	PriceModifier    decimal.Decimal `json:"price_modifier"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`
}

func (r CreateVariantRequest) Variant(queryID int64) (*domain.Variant, error) {
	if err := validator.Struct(r); err != nil {
		return nil, err
	}
	return &domain.Variant{
		QueryID:          queryID,
		Name:             r.Name,
		Description:      r.Description,
		IsDefault:        r.IsDefault,
		SortOrder:        r.SortOrder,
		PriceModifier:    r.PriceModifier,
		MarkupPercentage: r.MarkupPercentage,
	}, nil
}

type ComponentRequest struct {
	AttributeName string          `json:"attribute_name" validate:"required,max=255"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Description   string          `json:"description"`
}

type PricingPeriodRequest struct {
	StartDate     string             `json:"start_date" validate:"required"`
	EndDate       string             `json:"end_date" validate:"required"`
	MealPlanID    *int64             `json:"meal_plan_id" validate:"omitempty,gt=0"`
	NumberOfRooms int                `json:"number_of_rooms" validate:"gte=0"`
	VehicleTypeID *int64             `json:"vehicle_type_id" validate:"omitempty,gt=0"`
	Components    []ComponentRequest `json:"components" validate:"dive"`
}

type ReplacePricingRequest struct {
	Periods []PricingPeriodRequest `json:"periods" validate:"dive"`
}

// Pricing validates the request and converts it to storable periods.
func (r ReplacePricingRequest) Pricing() ([]domain.VariantPricing, error) {
	if err := validator.Struct(r); err != nil {
		return nil, err
	}
	out := make([]domain.VariantPricing, 0, len(r.Periods))
	for _, p := range r.Periods {
		start, err := dates.Parse(p.StartDate)
		if err != nil {
			return nil, apperr.Validation("start_date", err.Error())
		}
		end, err := dates.Parse(p.EndDate)
		if err != nil {
			return nil, apperr.Validation("end_date", err.Error())
		}
		vp := domain.VariantPricing{
			StartDate:     start,
			EndDate:       end,
			MealPlanID:    p.MealPlanID,
			NumberOfRooms: p.NumberOfRooms,
			VehicleTypeID: p.VehicleTypeID,
		}
		for _, c := range p.Components {
			vp.Components = append(vp.Components, domain.VariantPricingComponent{
				AttributeName: c.AttributeName,
				Price:         c.Price,
				PurchasePrice: c.PurchasePrice,
				Description:   c.Description,
			})
		}
		out = append(out, vp)
	}
	return out, nil
}
