package variant

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tourpricing/internal/domain"
	"tourpricing/internal/logging"
	"tourpricing/internal/modules/quote"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
	"tourpricing/internal/pkg/money"
)

// Service edits the live itinerary and pricing of variants. Days and pricing
// periods are only ever replaced as a whole.
type Service struct {
	db        *gorm.DB
	newRepo   func(*gorm.DB) Repository
	precision int32
	log       *zap.Logger
}

func NewService(db *gorm.DB, precision int32, log *zap.Logger) *Service {
	if precision <= 0 {
		precision = money.DefaultPrecision
	}
	return &Service{
		db:        db,
		newRepo:   defaultRepo,
		precision: precision,
		log:       logging.OrNop(log).Named("variant"),
	}
}

// Repository exposes the committed-data repository for readers such as the
// quote service.
func (s *Service) Repository() Repository {
	return s.newRepo(s.db)
}

func (s *Service) CreateQuery(ctx context.Context, name string) (*domain.Query, error) {
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	q := &domain.Query{Name: name}
	if err := s.newRepo(s.db).CreateQuery(ctx, q); err != nil {
		return nil, apperr.Internal("create query", err)
	}
	return q, nil
}

func (s *Service) CreateVariant(ctx context.Context, v *domain.Variant) error {
	if v.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if v.MarkupPercentage.IsNegative() {
		return apperr.Validation("markup_percentage", "markup must not be negative")
	}
	repo := s.newRepo(s.db)
	if _, err := repo.GetQuery(ctx, v.QueryID); err != nil {
		return err
	}
	v.ID = 0
	if err := repo.CreateVariant(ctx, v); err != nil {
		return apperr.Internal("create variant", err)
	}
	return nil
}

func (s *Service) ListVariants(ctx context.Context, queryID int64) ([]domain.Variant, error) {
	repo := s.newRepo(s.db)
	if _, err := repo.GetQuery(ctx, queryID); err != nil {
		return nil, err
	}
	return repo.ListVariantsByQuery(ctx, queryID)
}

// ReplaceDay stores day as the variant's itinerary day, replacing whatever
// was stored under the same day number together with its allocations.
func (s *Service) ReplaceDay(ctx context.Context, variantID int64, day domain.ItineraryDayAssignment) (*domain.VariantDay, error) {
	if err := quote.ValidateItinerary([]domain.ItineraryDayAssignment{day}, decimal.Zero); err != nil {
		return nil, err
	}
	row := toRow(variantID, day)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.newRepo(tx)
		if _, err := repo.GetVariant(ctx, variantID); err != nil {
			return err
		}
		if err := repo.DeleteDay(ctx, variantID, day.DayNumber); err != nil {
			return err
		}
		return repo.CreateDay(ctx, row)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("variant day replaced",
		zap.Int64("variant_id", variantID),
		zap.Int("day_number", day.DayNumber),
		zap.Int("rooms", len(row.Rooms)),
		zap.Int("transports", len(row.Transports)),
	)
	return row, nil
}

// Itinerary returns the variant's stored days in day order.
func (s *Service) Itinerary(ctx context.Context, variantID int64) ([]domain.ItineraryDayAssignment, error) {
	repo := s.newRepo(s.db)
	if _, err := repo.GetVariant(ctx, variantID); err != nil {
		return nil, err
	}
	rows, err := repo.ListDays(ctx, variantID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ItineraryDayAssignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToAssignment())
	}
	return out, nil
}

// ReplacePricing swaps the variant's pricing periods for periods in one
// transaction.
func (s *Service) ReplacePricing(ctx context.Context, variantID int64, periods []domain.VariantPricing) ([]domain.VariantPricing, error) {
	for i := range periods {
		if err := s.validatePricing(i, periods[i]); err != nil {
			return nil, err
		}
		periods[i].ID = 0
		periods[i].VariantID = variantID
		for j := range periods[i].Components {
			periods[i].Components[j].ID = 0
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.newRepo(tx)
		if _, err := repo.GetVariant(ctx, variantID); err != nil {
			return err
		}
		if err := repo.DeletePricing(ctx, variantID); err != nil {
			return err
		}
		return repo.CreatePricing(ctx, periods)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("variant pricing replaced", zap.Int64("variant_id", variantID), zap.Int("periods", len(periods)))
	return periods, nil
}

func (s *Service) Pricing(ctx context.Context, variantID int64) ([]domain.VariantPricing, error) {
	repo := s.newRepo(s.db)
	if _, err := repo.GetVariant(ctx, variantID); err != nil {
		return nil, err
	}
	return repo.ListPricing(ctx, variantID)
}

func (s *Service) validatePricing(i int, p domain.VariantPricing) error {
	field := func(name string) string { return fmt.Sprintf("periods[%d].%s", i, name) }

	if !dates.IsNormalized(p.StartDate) || !dates.IsNormalized(p.EndDate) || p.StartDate.IsZero() {
		return apperr.Validation(field("dates"), "dates must be calendar dates")
	}
	if p.EndDate.Before(p.StartDate) {
		return apperr.Validation(field("end_date"), "end_date must not be before start_date")
	}
	if p.NumberOfRooms < 0 {
		return apperr.Validation(field("number_of_rooms"), "number_of_rooms must not be negative")
	}
	for j, c := range p.Components {
		if c.AttributeName == "" {
			return apperr.Validation(field(fmt.Sprintf("components[%d].attribute_name", j)), "attribute_name is required")
		}
		if c.Price.IsNegative() || c.PurchasePrice.IsNegative() {
			return apperr.Validation(field(fmt.Sprintf("components[%d].price", j)), "prices must not be negative")
		}
		if !money.HasPrecision(c.Price, s.precision) || !money.HasPrecision(c.PurchasePrice, s.precision) {
			return apperr.Validation(field(fmt.Sprintf("components[%d].price", j)), "price has more fractional digits than the currency allows")
		}
	}
	return nil
}

func toRow(variantID int64, day domain.ItineraryDayAssignment) *domain.VariantDay {
	row := &domain.VariantDay{
		VariantID:    variantID,
		DayNumber:    day.DayNumber,
		Date:         day.Date,
		StaySpanDays: day.Nights(),
	}
	if day.SubjectID != 0 {
		hotelID := day.SubjectID
		row.HotelID = &hotelID
	}
	for _, r := range day.Rooms {
		row.Rooms = append(row.Rooms, domain.VariantRoomAllocation{
			RoomTypeID:      r.RoomTypeID,
			OccupancyTypeID: r.OccupancyTypeID,
			MealPlanID:      r.MealPlanID,
			Quantity:        r.Quantity,
			GuestNames:      datatypes.JSONSlice[string](r.GuestNames),
		})
	}
	for _, t := range day.Transports {
		row.Transports = append(row.Transports, domain.VariantTransport{
			AssignmentID:  t.AssignmentID,
			VehicleTypeID: t.VehicleTypeID,
			Quantity:      t.Quantity,
			BillingMode:   t.BillingMode,
		})
	}
	return row
}
