package quote

import (
	"context"
	"time"

	"tourpricing/internal/domain"
	"tourpricing/internal/modules/rates"
)

// PriceResolver is the rate lookup the aggregator prices lines with.
type PriceResolver interface {
	Resolve(ctx context.Context, date time.Time, key domain.AttributeKey) (rates.Resolution, error)
}

// VariantSource reads the live itinerary of a stored variant.
type VariantSource interface {
	GetVariant(ctx context.Context, id int64) (*domain.Variant, error)
	ListDays(ctx context.Context, variantID int64) ([]domain.VariantDay, error)
}
