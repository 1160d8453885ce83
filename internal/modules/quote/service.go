package quote

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tourpricing/internal/domain"
	"tourpricing/internal/logging"
	"tourpricing/internal/pkg/apperr"
)

type Service struct {
	aggregator    *Aggregator
	variants      VariantSource
	defaultMarkup decimal.Decimal
	log           *zap.Logger
}

func NewService(aggregator *Aggregator, variants VariantSource, defaultMarkup decimal.Decimal, log *zap.Logger) *Service {
	return &Service{
		aggregator:    aggregator,
		variants:      variants,
		defaultMarkup: defaultMarkup,
		log:           logging.OrNop(log).Named("quote"),
	}
}

// QuoteItinerary prices an ad hoc itinerary. A nil markup uses the
// configured default.
func (s *Service) QuoteItinerary(ctx context.Context, days []domain.ItineraryDayAssignment, markup *decimal.Decimal) (*domain.PricingResult, error) {
	pct := s.defaultMarkup
	if markup != nil {
		pct = *markup
	}
	return s.aggregator.Compute(ctx, days, pct)
}

// QuoteVariant prices the stored itinerary of a variant. A nil markup uses
// the variant's own markup percentage.
func (s *Service) QuoteVariant(ctx context.Context, variantID int64, markup *decimal.Decimal) (*domain.PricingResult, error) {
	v, err := s.variants.GetVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	stored, err := s.variants.ListDays(ctx, variantID)
	if err != nil {
		return nil, apperr.Internal("load variant days", err)
	}
	if len(stored) == 0 {
		return nil, apperr.Validation("days", "variant has no itinerary days")
	}

	days := make([]domain.ItineraryDayAssignment, 0, len(stored))
	for _, d := range stored {
		days = append(days, d.ToAssignment())
	}

	pct := v.MarkupPercentage
	if markup != nil {
		pct = *markup
	}

	result, err := s.aggregator.Compute(ctx, days, pct)
	if err != nil {
		return nil, err
	}
	s.log.Debug("variant quoted",
		zap.Int64("variant_id", variantID),
		zap.String("base_price", result.BasePrice.String()),
		zap.String("total_cost", result.TotalCost.String()),
	)
	return result, nil
}
