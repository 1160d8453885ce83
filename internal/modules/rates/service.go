package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourpricing/internal/domain"
	"tourpricing/internal/logging"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/keylock"
	"tourpricing/internal/pkg/money"
	"tourpricing/internal/repository"
)

const defaultMaxRetries = 3

type Options struct {
	// Precision is the number of fractional digits a price may carry; zero
	// means money.DefaultPrecision.
	Precision int32
	// MaxRetries bounds attempts of an insert that hit a concurrency conflict.
	MaxRetries int
	Logger     *zap.Logger
}

// Service is the rate period store. Inserts for the same attribute key are
// serialized in process by a key lock and across processes by a row lock on
// the key's guard row, taken first in every writing transaction.
type Service struct {
	db         *gorm.DB
	locks      *keylock.Locker
	newRepo    func(*gorm.DB) PeriodRepository
	precision  int32
	maxRetries int
	log        *zap.Logger
}

func NewService(db *gorm.DB, opts Options) *Service {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Precision <= 0 {
		opts.Precision = money.DefaultPrecision
	}
	return &Service{
		db:         db,
		locks:      keylock.New(),
		newRepo:    defaultRepo,
		precision:  opts.Precision,
		maxRetries: opts.MaxRetries,
		log:        logging.OrNop(opts.Logger).Named("rates"),
	}
}

// Resolver returns a resolver reading committed periods.
func (s *Service) Resolver() *Resolver {
	return NewResolver(s.newRepo(s.db))
}

func (s *Service) Resolve(ctx context.Context, date time.Time, key domain.AttributeKey) (Resolution, error) {
	if err := ValidateKey(key); err != nil {
		return Resolution{}, err
	}
	return s.Resolver().Resolve(ctx, date, key)
}

// PlanInsert computes the split plan for p against the current table
// without applying it.
func (s *Service) PlanInsert(ctx context.Context, p domain.RatePeriod) (*SplitPlan, error) {
	p = prepare(p)
	if err := ValidatePeriod(p, s.precision); err != nil {
		return nil, err
	}
	existing, err := s.newRepo(s.db).FindOverlapping(ctx, p.AttributeKey, p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}
	plan := SplitInsert(existing, p)
	return &plan, nil
}

// Insert adds p to the table, splitting whatever it overlaps, and returns the
// applied plan. Conflicting concurrent writers are retried a bounded number
// of times against a fresh read.
func (s *Service) Insert(ctx context.Context, p domain.RatePeriod) (*SplitPlan, error) {
	p = prepare(p)
	if err := ValidatePeriod(p, s.precision); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(p.AttributeKey.String())
	defer unlock()

	for attempt := 1; ; attempt++ {
		plan, err := s.applyInsert(ctx, p)
		if err == nil {
			s.log.Info("rate period inserted",
				zap.String("key", p.AttributeKey.String()),
				zap.Int("deleted", len(plan.PeriodsToDelete)),
				zap.Int("created", len(plan.PeriodsToCreate)),
				zap.Int("attempt", attempt),
			)
			return plan, nil
		}
		if !errors.Is(err, apperr.ErrConcurrencyConflict) {
			return nil, err
		}
		if attempt >= s.maxRetries {
			s.log.Error("rate period insert gave up", zap.String("key", p.AttributeKey.String()), zap.Int("attempts", attempt), zap.Error(err))
			if e, ok := apperr.As(err); ok {
				e.WithContext("attempts", attempt)
			}
			return nil, err
		}
		s.log.Warn("rate period insert conflict, retrying", zap.String("key", p.AttributeKey.String()), zap.Int("attempt", attempt), zap.Error(err))
	}
}

func (s *Service) applyInsert(ctx context.Context, p domain.RatePeriod) (*SplitPlan, error) {
	var plan SplitPlan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.newRepo(tx)
		if err := repo.LockKey(ctx, p.AttributeKey); err != nil {
			return err
		}

		existing, err := repo.FindOverlapping(ctx, p.AttributeKey, p.StartDate, p.EndDate)
		if err != nil {
			return err
		}
		plan = SplitInsert(existing, p)

		deleted, err := repo.DeleteActive(ctx, plan.PeriodsToDelete)
		if err != nil {
			return err
		}
		if deleted != int64(len(plan.PeriodsToDelete)) {
			return apperr.ConcurrencyConflict(
				fmt.Sprintf("overlapping periods changed: expected to delete %d, deleted %d", len(plan.PeriodsToDelete), deleted), nil)
		}

		if err := repo.CreateBatch(ctx, plan.PeriodsToCreate); err != nil {
			if repository.IsUniqueConstraintError(err) {
				return apperr.ConcurrencyConflict("rate period with the same key and start date was created concurrently", err)
			}
			return err
		}
		return verifyApplied(ctx, repo, p, plan)
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// verifyApplied re-reads the inserted range and fails with a conflict when
// a period this insert did not create is active inside it, which happens
// only when some writer bypassed the key lock.
func verifyApplied(ctx context.Context, repo PeriodRepository, p domain.RatePeriod, plan SplitPlan) error {
	created := make(map[int64]bool, len(plan.PeriodsToCreate))
	for _, c := range plan.PeriodsToCreate {
		created[c.ID] = true
	}
	active, err := repo.FindOverlapping(ctx, p.AttributeKey, p.StartDate, p.EndDate)
	if err != nil {
		return err
	}
	for _, a := range active {
		if !created[a.ID] {
			return apperr.ConcurrencyConflict(
				fmt.Sprintf("period %d was written concurrently inside the inserted range", a.ID), nil).
				WithContext("period_id", a.ID)
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context, key domain.AttributeKey, includeInactive bool) ([]domain.RatePeriod, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return s.newRepo(s.db).ListByKey(ctx, key, includeInactive)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.RatePeriod, error) {
	return s.newRepo(s.db).GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.newRepo(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(p.AttributeKey.String())
	defer unlock()

	return s.newRepo(s.db).Delete(ctx, id)
}

// SetActive toggles a period. Activating is refused when it would overlap
// another active period of the same key.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	p, err := s.newRepo(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(p.AttributeKey.String())
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.newRepo(tx)
		if err := repo.LockKey(ctx, p.AttributeKey); err != nil {
			return err
		}
		if active {
			overlapping, err := repo.FindOverlapping(ctx, p.AttributeKey, p.StartDate, p.EndDate)
			if err != nil {
				return err
			}
			for _, o := range overlapping {
				if o.ID != p.ID {
					return apperr.Validation("is_active", "period overlaps an active period of the same key").
						WithContext("overlapping_id", o.ID)
				}
			}
		}
		return repo.SetActive(ctx, id, active)
	})
}

func prepare(p domain.RatePeriod) domain.RatePeriod {
	p.ID = 0
	p.IsActive = true
	return p
}
