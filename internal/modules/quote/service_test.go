package quote

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourpricing/internal/domain"
	"tourpricing/internal/modules/rates"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:quote_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

type fixture struct {
	svc       *Service
	variantID int64
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	db := setupTestDB(t)
	ctx := context.Background()

	rateSvc := rates.NewService(db, rates.Options{Precision: 2})
	_, err := rateSvc.Insert(ctx, domain.RatePeriod{AttributeKey: roomKey(), StartDate: july(1), EndDate: july(31), Price: dec("4000")})
	require.NoError(t, err)
	_, err = rateSvc.Insert(ctx, domain.RatePeriod{AttributeKey: domain.VehicleKey(vehicle), StartDate: july(1), EndDate: july(31), Price: dec("2000")})
	require.NoError(t, err)

	variants := repository.NewVariantRepository(db)
	q := &domain.Query{Name: "Summer trip"}
	require.NoError(t, variants.CreateQuery(ctx, q))
	v := &domain.Variant{QueryID: q.ID, Name: "Standard", MarkupPercentage: dec("10")}
	require.NoError(t, variants.CreateVariant(ctx, v))

	hotel := hotelID
	require.NoError(t, variants.CreateDay(ctx, &domain.VariantDay{
		VariantID:    v.ID,
		DayNumber:    1,
		Date:         july(10),
		HotelID:      &hotel,
		StaySpanDays: 2,
		Rooms: []domain.VariantRoomAllocation{
			{RoomTypeID: roomType, OccupancyTypeID: occupancy, MealPlanID: mealPlan, Quantity: 2},
		},
		Transports: []domain.VariantTransport{
			{AssignmentID: "transfer", VehicleTypeID: vehicle, Quantity: 1, BillingMode: domain.BillingPerTrip},
		},
	}))

	agg := NewAggregator(rateSvc.Resolver(), 2, nil)
	return fixture{svc: NewService(agg, variants, dec("5"), nil), variantID: v.ID}
}

func TestQuoteVariant_UsesVariantMarkup(t *testing.T) {
	f := setupFixture(t)

	res, err := f.svc.QuoteVariant(context.Background(), f.variantID, nil)

	require.NoError(t, err)
	assertDecimal(t, "18000", res.BasePrice, "base")
	assertDecimal(t, "19800", res.TotalCost, "total")
}

func TestQuoteVariant_ExplicitMarkupWins(t *testing.T) {
	f := setupFixture(t)
	zero := decimal.Zero

	res, err := f.svc.QuoteVariant(context.Background(), f.variantID, &zero)

	require.NoError(t, err)
	assert.True(t, res.TotalCost.Equal(res.BasePrice))
}

func TestQuoteVariant_UnknownVariant(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.QuoteVariant(context.Background(), 999, nil)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestQuoteItinerary_DefaultMarkup(t *testing.T) {
	f := setupFixture(t)

	res, err := f.svc.QuoteItinerary(context.Background(), twoNightItinerary(), nil)

	require.NoError(t, err)
	assertDecimal(t, "5", res.MarkupPercentage, "markup pct")
	assertDecimal(t, "18900", res.TotalCost, "total")
}
