package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/dates"
)

var seedYear int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo catalog, rates and one quoted trip",
	Long: `Load demo data: a small catalog, a summer season of hotel and vehicle
rates and one query with a two-variant itinerary.

Catalog rows use fixed ids and are left alone when they already exist.
Rates are inserted through the splitting store, so re-running is harmless.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedYear, "year", time.Now().Year(), "season year")
}

func ptr[T any](v T) *T { return &v }

func day(month time.Month, d int) time.Time {
	return time.Date(seedYear, month, d, 0, 0, 0, 0, time.UTC)
}

func runSeed(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	// catalog
	catalog := []any{
		&[]domain.Location{{ID: 1, Name: "Almaty"}, {ID: 2, Name: "Shymkent"}},
		&[]domain.Hotel{
			{ID: 1, Name: "Rixos Almaty", LocationID: ptr(int64(1))},
			{ID: 2, Name: "Shymkent Plaza", LocationID: ptr(int64(2))},
		},
		&[]domain.RoomType{{ID: 1, Name: "Standard"}, {ID: 2, Name: "Deluxe"}},
		&[]domain.OccupancyType{{ID: 1, Name: "Single"}, {ID: 2, Name: "Double"}},
		&[]domain.MealPlan{{ID: 1, Code: "BB", Name: "Bed & Breakfast"}, {ID: 2, Code: "HB", Name: "Half Board"}},
		&[]domain.VehicleType{{ID: 1, Name: "Sedan", Capacity: 3}, {ID: 2, Name: "Minibus", Capacity: 15}},
	}
	fmt.Println("Creating catalog...")
	for _, rows := range catalog {
		if err := svc.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	fmt.Println("Inserting rates...")
	if err := seedRates(ctx, svc); err != nil {
		return err
	}

	fmt.Println("Creating query and variants...")
	q, err := svc.variants.CreateQuery(ctx, fmt.Sprintf("Silk Road %d", seedYear))
	if err != nil {
		return err
	}
	variants := []*domain.Variant{
		{QueryID: q.ID, Name: "Standard", IsDefault: true, SortOrder: 1, MarkupPercentage: decimal.NewFromInt(10)},
		{QueryID: q.ID, Name: "Deluxe", SortOrder: 2, MarkupPercentage: decimal.NewFromInt(15)},
	}
	for i, v := range variants {
		if err := svc.variants.CreateVariant(ctx, v); err != nil {
			return err
		}
		for _, d := range seedItinerary(int64(i + 1)) {
			if _, err := svc.variants.ReplaceDay(ctx, v.ID, d); err != nil {
				return fmt.Errorf("seed variant %d day %d: %w", v.ID, d.DayNumber, err)
			}
		}
		if _, err := svc.variants.ReplacePricing(ctx, v.ID, seedPricing(int64(i+1))); err != nil {
			return err
		}
	}

	log.Info("demo data seeded", zap.Int64("query_id", q.ID), zap.Int("variants", len(variants)))
	fmt.Printf("✓ query %d with variants %d and %d\n", q.ID, variants[0].ID, variants[1].ID)
	return nil
}

func seedRates(ctx context.Context, svc *services) error {
	type seedRate struct {
		key        domain.AttributeKey
		start, end time.Time
		price      int64
	}
	var rows []seedRate
	for hotel := int64(1); hotel <= 2; hotel++ {
		for room := int64(1); room <= 2; room++ {
			for occ := int64(1); occ <= 2; occ++ {
				base := 30000*hotel/2 + 8000*(room-1) + 5000*(occ-1)
				key := domain.HotelKey(hotel, room, occ, 1)
				rows = append(rows,
					seedRate{key, day(time.June, 1), day(time.August, 31), base},
					// peak weeks are split out of the season
					seedRate{key, day(time.July, 10), day(time.July, 24), base + base/4},
				)
			}
		}
	}
	rows = append(rows,
		seedRate{domain.VehicleKey(1), day(time.June, 1), day(time.August, 31), 25000},
		seedRate{domain.VehicleKey(2), day(time.June, 1), day(time.August, 31), 60000},
	)

	for _, r := range rows {
		_, err := svc.rates.Insert(ctx, domain.RatePeriod{
			AttributeKey: r.key,
			StartDate:    r.start,
			EndDate:      r.end,
			Price:        decimal.NewFromInt(r.price),
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("seed rate %s: %w", r.key, err)
		}
	}
	return nil
}

func seedItinerary(roomType int64) []domain.ItineraryDayAssignment {
	start := day(time.July, 8)
	return []domain.ItineraryDayAssignment{
		{
			DayNumber: 1, Date: start, SubjectID: 1, StaySpanDays: 2,
			Rooms: []domain.RoomAllocation{{RoomTypeID: roomType, OccupancyTypeID: 2, MealPlanID: 1, Quantity: 2}},
			Transports: []domain.TransportAssignment{
				{AssignmentID: "airport", VehicleTypeID: 1, Quantity: 1, BillingMode: domain.BillingPerTrip},
			},
		},
		{
			DayNumber: 3, Date: dates.AddDays(start, 2), SubjectID: 2, StaySpanDays: 1,
			Rooms: []domain.RoomAllocation{{RoomTypeID: roomType, OccupancyTypeID: 2, MealPlanID: 1, Quantity: 2}},
			Transports: []domain.TransportAssignment{
				{VehicleTypeID: 2, Quantity: 1, BillingMode: domain.BillingPerDay},
			},
		},
	}
}

func seedPricing(tier int64) []domain.VariantPricing {
	return []domain.VariantPricing{{
		StartDate:     day(time.June, 1),
		EndDate:       day(time.August, 31),
		MealPlanID:    ptr(int64(1)),
		NumberOfRooms: 2,
		VehicleTypeID: ptr(int64(1)),
		Components: []domain.VariantPricingComponent{
			{AttributeName: "Accommodation", Price: decimal.NewFromInt(120000 * tier), PurchasePrice: decimal.NewFromInt(100000 * tier)},
			{AttributeName: "Transfers", Price: decimal.NewFromInt(85000), PurchasePrice: decimal.NewFromInt(70000)},
		},
	}}
}
