package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourpricing/internal/domain"
	"tourpricing/internal/logging"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/keylock"
	"tourpricing/internal/pkg/money"
)

type CreateResult struct {
	Success    bool  `json:"success"`
	Count      int   `json:"count"`
	Generation int64 `json:"generation"`
}

// Service manages frozen copies of variants. Readers of a query only see
// the snapshots of its current generation; a replacing pass writes a new
// generation, moves the pointer and drops the old rows in one transaction.
// Writers of one query serialize on a row lock of the query itself.
type Service struct {
	db        *gorm.DB
	locks     *keylock.Locker
	newRepos  func(*gorm.DB) Repos
	precision int32
	log       *zap.Logger
}

func NewService(db *gorm.DB, precision int32, log *zap.Logger) *Service {
	if precision <= 0 {
		precision = money.DefaultPrecision
	}
	return &Service{
		db:        db,
		locks:     keylock.New(),
		newRepos:  defaultRepos,
		precision: precision,
		log:       logging.OrNop(log).Named("snapshot"),
	}
}

// CreateSnapshots freezes variantIDs of queryID. With overwrite the new set
// replaces every existing snapshot of the query; without it the new
// snapshots join the current set. Either all snapshots are created or none.
func (s *Service) CreateSnapshots(ctx context.Context, queryID int64, variantIDs []int64, overwrite bool) (*CreateResult, error) {
	if queryID <= 0 {
		return nil, apperr.Validation("query_id", "query_id is required")
	}
	if len(variantIDs) == 0 {
		return nil, apperr.Validation("variant_ids", "at least one variant is required")
	}
	seen := make(map[int64]bool, len(variantIDs))
	for _, id := range variantIDs {
		if id <= 0 || seen[id] {
			return nil, apperr.Validation("variant_ids", fmt.Sprintf("invalid or repeated variant id %d", id))
		}
		seen[id] = true
	}

	unlock := s.locks.Lock(lockKey(queryID))
	defer unlock()

	var generation int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.newRepos(tx)
		if _, err := repos.Variants.LockQuery(ctx, queryID); err != nil {
			return err
		}

		current, err := repos.Snapshots.LockGeneration(ctx, queryID)
		if err != nil {
			return err
		}
		generation = current
		if overwrite || current == 0 {
			stored, err := repos.Snapshots.MaxGeneration(ctx, queryID)
			if err != nil {
				return err
			}
			generation = max(current, stored) + 1
		}

		for _, id := range variantIDs {
			snap, err := s.build(ctx, repos, queryID, generation, id)
			if err != nil {
				return err
			}
			if err := repos.Snapshots.Create(ctx, snap); err != nil {
				return fmt.Errorf("store snapshot of variant %d: %w", id, err)
			}
		}

		if err := repos.Snapshots.SetGeneration(ctx, queryID, generation); err != nil {
			return err
		}
		if overwrite {
			if _, err := repos.Snapshots.DeleteExcept(ctx, queryID, generation); err != nil {
				return fmt.Errorf("drop previous snapshots: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("snapshot creation rolled back", zap.Int64("query_id", queryID), zap.Error(err))
		switch apperr.TypeOf(err) {
		case apperr.TypeValidation, apperr.TypeNotFound:
			return nil, err
		}
		return nil, apperr.SnapshotIntegrity(fmt.Sprintf("snapshots of query %d were not created", queryID), err).
			WithContext("query_id", queryID)
	}

	s.log.Info("snapshots created",
		zap.Int64("query_id", queryID),
		zap.Int64("generation", generation),
		zap.Int("count", len(variantIDs)),
		zap.Bool("overwrite", overwrite),
	)
	return &CreateResult{Success: true, Count: len(variantIDs), Generation: generation}, nil
}

func (s *Service) build(ctx context.Context, repos Repos, queryID, generation, variantID int64) (*domain.VariantSnapshot, error) {
	v, err := repos.Variants.GetVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v.QueryID != queryID {
		return nil, apperr.Validation("variant_ids", fmt.Sprintf("variant %d does not belong to query %d", variantID, queryID))
	}

	snap := &domain.VariantSnapshot{
		QueryID:          queryID,
		Generation:       generation,
		SourceVariantID:  v.ID,
		Name:             v.Name,
		Description:      v.Description,
		IsDefault:        v.IsDefault,
		SortOrder:        v.SortOrder,
		PriceModifier:    v.PriceModifier,
		MarkupPercentage: v.MarkupPercentage,
		Hotels:           []domain.HotelSnapshot{},
		Pricing:          []domain.PricingSnapshot{},
	}

	days, err := repos.Variants.ListDays(ctx, variantID)
	if err != nil {
		return nil, err
	}
	hotelIDs := make([]int64, 0, len(days))
	for _, d := range days {
		if d.HotelID != nil {
			hotelIDs = append(hotelIDs, *d.HotelID)
		}
	}
	hotels, err := repos.Catalog.HotelsByID(ctx, hotelIDs)
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		if d.HotelID == nil || d.DayNumber <= 0 {
			continue
		}
		hs := domain.HotelSnapshot{DayNumber: d.DayNumber, HotelID: *d.HotelID}
		if h, ok := hotels[*d.HotelID]; ok {
			hs.HotelName = h.Name
			hs.ImageURL = h.ImageURL
			if h.Location != nil {
				hs.LocationLabel = h.Location.Name
			}
		}
		snap.Hotels = append(snap.Hotels, hs)
	}

	periods, err := repos.Variants.ListPricing(ctx, variantID)
	if err != nil {
		return nil, err
	}
	var mealPlanIDs, vehicleIDs []int64
	for _, p := range periods {
		if p.MealPlanID != nil {
			mealPlanIDs = append(mealPlanIDs, *p.MealPlanID)
		}
		if p.VehicleTypeID != nil {
			vehicleIDs = append(vehicleIDs, *p.VehicleTypeID)
		}
	}
	mealPlans, err := repos.Catalog.MealPlanNames(ctx, mealPlanIDs)
	if err != nil {
		return nil, err
	}
	vehicles, err := repos.Catalog.VehicleTypeNames(ctx, vehicleIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range periods {
		ps := domain.PricingSnapshot{
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			NumberOfRooms: p.NumberOfRooms,
			Components:    make([]domain.PricingComponentSnapshot, 0, len(p.Components)),
		}
		if p.MealPlanID != nil {
			ps.MealPlanName = mealPlans[*p.MealPlanID]
		}
		if p.VehicleTypeID != nil {
			ps.VehicleTypeName = vehicles[*p.VehicleTypeID]
		}
		prices := make([]decimal.Decimal, 0, len(p.Components))
		for _, c := range p.Components {
			ps.Components = append(ps.Components, domain.PricingComponentSnapshot{
				AttributeName: c.AttributeName,
				Price:         c.Price,
				PurchasePrice: c.PurchasePrice,
				Description:   c.Description,
			})
			prices = append(prices, c.Price)
		}
		ps.TotalPrice = money.Sum(prices...)
		snap.Pricing = append(snap.Pricing, ps)
	}
	return snap, nil
}

// GetSnapshots returns the published snapshots of queryID with every owned
// row loaded.
func (s *Service) GetSnapshots(ctx context.Context, queryID int64) ([]domain.VariantSnapshot, error) {
	repos := s.newRepos(s.db)
	generation, err := repos.Snapshots.CurrentGeneration(ctx, queryID)
	if err != nil {
		return nil, apperr.Internal("read snapshot generation", err)
	}
	if generation == 0 {
		return []domain.VariantSnapshot{}, nil
	}
	return repos.Snapshots.List(ctx, queryID, generation)
}

// DeleteSnapshots removes every snapshot of queryID with its owned rows and
// returns how many variant snapshots went away.
func (s *Service) DeleteSnapshots(ctx context.Context, queryID int64) (int64, error) {
	unlock := s.locks.Lock(lockKey(queryID))
	defer unlock()

	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.newRepos(tx)
		// a deleted query can still own snapshots; nobody can create new ones
		if _, err := repos.Variants.LockQuery(ctx, queryID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		n, err := repos.Snapshots.DeleteExcept(ctx, queryID, 0)
		if err != nil {
			return err
		}
		count = n
		return repos.Snapshots.ClearGeneration(ctx, queryID)
	})
	if err != nil {
		return 0, apperr.SnapshotIntegrity(fmt.Sprintf("snapshots of query %d were not deleted", queryID), err)
	}

	s.log.Info("snapshots deleted", zap.Int64("query_id", queryID), zap.Int64("count", count))
	return count, nil
}

// CountOrphans reports hotel, pricing and component snapshot rows whose
// parent row is gone. Anything but zero means a delete bypassed the service.
func (s *Service) CountOrphans(ctx context.Context) (int64, error) {
	n, err := s.newRepos(s.db).Snapshots.CountOrphans(ctx)
	if err != nil {
		return 0, apperr.Internal("count orphaned snapshot rows", err)
	}
	if n > 0 {
		s.log.Warn("orphaned snapshot rows found", zap.Int64("count", n))
	}
	return n, nil
}

// PricingDisplay is a snapshot pricing period with markup applied.
type PricingDisplay struct {
	VariantSnapshotID string       `json:"variant_snapshot_id"`
	PricingSnapshotID string       `json:"pricing_snapshot_id"`
	Price             money.Markup `json:"price"`
}

// ApplyMarkup prices every period of snaps for display. A nil percentage
// uses each snapshot's frozen markup.
func ApplyMarkup(snaps []domain.VariantSnapshot, percentage *decimal.Decimal, precision int32) []PricingDisplay {
	out := make([]PricingDisplay, 0)
	for _, snap := range snaps {
		pct := snap.MarkupPercentage
		if percentage != nil {
			pct = *percentage
		}
		for _, p := range snap.Pricing {
			out = append(out, PricingDisplay{
				VariantSnapshotID: snap.ID.String(),
				PricingSnapshotID: p.ID.String(),
				Price:             money.ApplyMarkup(p.TotalPrice, pct, precision),
			})
		}
	}
	return out
}

// Precision is the currency precision snapshots are displayed with.
func (s *Service) Precision() int32 {
	return s.precision
}

func lockKey(queryID int64) string {
	return "query:" + strconv.FormatInt(queryID, 10)
}
