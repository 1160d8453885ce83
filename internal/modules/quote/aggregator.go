package quote

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tourpricing/internal/domain"
	"tourpricing/internal/logging"
	"tourpricing/internal/modules/rates"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
	"tourpricing/internal/pkg/money"
)

// tripIdentity groups per-trip transport across consecutive days.
type tripIdentity struct {
	vehicleTypeID int64
	assignmentID  string
}

func identityOf(t domain.TransportAssignment) tripIdentity {
	return tripIdentity{vehicleTypeID: t.VehicleTypeID, assignmentID: t.AssignmentID}
}

// tripRun is the open per-trip charge of an identity.
type tripRun struct {
	startDay int
	lastDay  int
	quantity int
}

// Aggregator turns an itinerary into a priced breakdown.
type Aggregator struct {
	resolver  PriceResolver
	precision int32
	log       *zap.Logger
}

func NewAggregator(resolver PriceResolver, precision int32, log *zap.Logger) *Aggregator {
	if precision <= 0 {
		precision = money.DefaultPrecision
	}
	return &Aggregator{
		resolver:  resolver,
		precision: precision,
		log:       logging.OrNop(log).Named("quote"),
	}
}

// Compute prices every night and transport line of days and applies
// markupPercentage to the sum. Missing rates become zero-cost lines with a
// warning; a corrupted rate table aborts the computation.
func (a *Aggregator) Compute(ctx context.Context, days []domain.ItineraryDayAssignment, markupPercentage decimal.Decimal) (*domain.PricingResult, error) {
	if err := ValidateItinerary(days, markupPercentage); err != nil {
		return nil, err
	}

	ordered := make([]domain.ItineraryDayAssignment, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].DayNumber < ordered[j].DayNumber })

	result := &domain.PricingResult{
		Breakdown: make([]domain.CostBreakdownLine, 0, len(ordered)),
		Warnings:  []string{},
	}
	accommodation := decimal.Zero
	transport := decimal.Zero
	runs := make(map[tripIdentity]*tripRun)

	for _, day := range ordered {
		line := domain.CostBreakdownLine{
			DayNumber:      day.DayNumber,
			Date:           day.Date,
			SubjectID:      day.SubjectID,
			RoomLines:      []domain.RoomLine{},
			TransportLines: []domain.TransportLine{},
		}
		dayTotal := decimal.Zero

		for night := 0; night < day.Nights() && day.SubjectID != 0; night++ {
			date := dates.AddDays(day.Date, night)
			for _, room := range day.Rooms {
				rl, err := a.priceRoom(ctx, day, date, room)
				if err != nil {
					return nil, err
				}
				if rl.Warning != "" {
					result.Warnings = append(result.Warnings, rl.Warning)
				}
				accommodation = accommodation.Add(rl.LineTotal)
				dayTotal = dayTotal.Add(rl.LineTotal)
				line.RoomLines = append(line.RoomLines, rl)
			}
		}

		for _, t := range day.Transports {
			tl, err := a.priceTransport(ctx, day, t, runs)
			if err != nil {
				return nil, err
			}
			if tl.Warning != "" {
				result.Warnings = append(result.Warnings, tl.Warning)
			}
			transport = transport.Add(tl.LineTotal)
			dayTotal = dayTotal.Add(tl.LineTotal)
			line.TransportLines = append(line.TransportLines, tl)
		}

		line.DayTotal = dayTotal
		result.Breakdown = append(result.Breakdown, line)
	}

	base := money.Sum(accommodation, transport)
	m := money.ApplyMarkup(base, markupPercentage, a.precision)

	result.AccommodationTotal = accommodation
	result.TransportTotal = transport
	result.BasePrice = m.Base
	result.MarkupPercentage = m.Percentage
	result.MarkupAmount = m.Amount
	result.TotalCost = m.Total

	if len(result.Warnings) > 0 {
		a.log.Warn("quote has uncovered lines", zap.Int("warnings", len(result.Warnings)), zap.Strings("details", result.Warnings))
	}
	return result, nil
}

func (a *Aggregator) priceRoom(ctx context.Context, day domain.ItineraryDayAssignment, date time.Time, room domain.RoomAllocation) (domain.RoomLine, error) {
	key := domain.HotelKey(day.SubjectID, room.RoomTypeID, room.OccupancyTypeID, room.MealPlanID)
	rl := domain.RoomLine{
		Date:            date,
		RoomTypeID:      room.RoomTypeID,
		OccupancyTypeID: room.OccupancyTypeID,
		MealPlanID:      room.MealPlanID,
		Quantity:        room.Quantity,
		UnitPrice:       decimal.Zero,
		LineTotal:       decimal.Zero,
	}

	res, err := a.resolve(ctx, day, date, key)
	if err != nil {
		return rl, err
	}
	if !res.Covered() {
		rl.Warning = noCoverageWarning(day.DayNumber, date, key)
		return rl, nil
	}
	rl.RatePeriodID = res.Period.ID
	rl.UnitPrice = res.Period.Price
	rl.LineTotal = res.Period.Price.Mul(decimal.NewFromInt(int64(room.Quantity)))
	return rl, nil
}

// priceTransport charges per-day transport on every day it appears and
// per-trip transport once per run of consecutive days with the same
// identity and quantity. Later days of a run carry a zero line pointing at
// the charged day.
func (a *Aggregator) priceTransport(ctx context.Context, day domain.ItineraryDayAssignment, t domain.TransportAssignment, runs map[tripIdentity]*tripRun) (domain.TransportLine, error) {
	tl := domain.TransportLine{
		VehicleTypeID: t.VehicleTypeID,
		AssignmentID:  t.AssignmentID,
		BillingMode:   t.BillingMode,
		Quantity:      t.Quantity,
		UnitPrice:     decimal.Zero,
		LineTotal:     decimal.Zero,
	}

	if t.BillingMode == domain.BillingPerTrip {
		id := identityOf(t)
		if run, ok := runs[id]; ok && run.lastDay == day.DayNumber-1 && run.quantity == t.Quantity {
			run.lastDay = day.DayNumber
			tl.ChargedOnDay = run.startDay
			return tl, nil
		}
		runs[id] = &tripRun{startDay: day.DayNumber, lastDay: day.DayNumber, quantity: t.Quantity}
		tl.ChargedOnDay = day.DayNumber
	}

	key := domain.VehicleKey(t.VehicleTypeID)
	res, err := a.resolve(ctx, day, day.Date, key)
	if err != nil {
		return tl, err
	}
	if !res.Covered() {
		tl.Warning = noCoverageWarning(day.DayNumber, day.Date, key)
		return tl, nil
	}
	tl.UnitPrice = res.Period.Price
	tl.LineTotal = res.Period.Price.Mul(decimal.NewFromInt(int64(t.Quantity)))
	return tl, nil
}

func (a *Aggregator) resolve(ctx context.Context, day domain.ItineraryDayAssignment, date time.Time, key domain.AttributeKey) (rates.Resolution, error) {
	res, err := a.resolver.Resolve(ctx, date, key)
	if err != nil {
		if e, ok := apperr.As(err); ok {
			e.WithContext("day_number", day.DayNumber)
			return res, err
		}
		return res, apperr.Internal("resolve price", err)
	}
	return res, nil
}

func noCoverageWarning(dayNumber int, date time.Time, key domain.AttributeKey) string {
	return fmt.Sprintf("day %d: no rate for %s on %s", dayNumber, key, dates.Format(date))
}
