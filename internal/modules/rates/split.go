package rates

import (
	"sort"
	"time"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/dates"
)

// SplitPlan is the diff that inserting a period produces. The caller applies
// it atomically: delete PeriodsToDelete, then create PeriodsToCreate.
type SplitPlan struct {
	PeriodsToDelete []int64             `json:"periods_to_delete"`
	PeriodsToCreate []domain.RatePeriod `json:"periods_to_create"`
}

// SplitInsert computes how newPeriod replaces whatever it overlaps in
// existing. Periods of other keys, inactive periods and periods that do not
// overlap are ignored. Overlapped periods are deleted and their uncovered
// remainders re-emitted at their old price. Creates are sorted by start date.
func SplitInsert(existing []domain.RatePeriod, newPeriod domain.RatePeriod) SplitPlan {
	plan := SplitPlan{
		PeriodsToDelete: []int64{},
		PeriodsToCreate: []domain.RatePeriod{},
	}

	for _, p := range existing {
		if !p.IsActive || p.AttributeKey != newPeriod.AttributeKey {
			continue
		}
		if !p.Overlaps(newPeriod.StartDate, newPeriod.EndDate) {
			continue
		}

		plan.PeriodsToDelete = append(plan.PeriodsToDelete, p.ID)

		if p.StartDate.Before(newPeriod.StartDate) {
			plan.PeriodsToCreate = append(plan.PeriodsToCreate,
				segment(p, p.StartDate, dates.AddDays(newPeriod.StartDate, -1)))
		}
		if p.EndDate.After(newPeriod.EndDate) {
			plan.PeriodsToCreate = append(plan.PeriodsToCreate,
				segment(p, dates.AddDays(newPeriod.EndDate, 1), p.EndDate))
		}
	}

	plan.PeriodsToCreate = append(plan.PeriodsToCreate, segment(newPeriod, newPeriod.StartDate, newPeriod.EndDate))

	sort.SliceStable(plan.PeriodsToCreate, func(i, j int) bool {
		return plan.PeriodsToCreate[i].StartDate.Before(plan.PeriodsToCreate[j].StartDate)
	})
	return plan
}

func segment(from domain.RatePeriod, start, end time.Time) domain.RatePeriod {
	return domain.RatePeriod{
		AttributeKey: from.AttributeKey,
		StartDate:    start,
		EndDate:      end,
		Price:        from.Price,
		IsActive:     true,
	}
}
