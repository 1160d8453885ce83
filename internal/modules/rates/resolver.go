package rates

import (
	"context"
	"fmt"
	"time"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
)

// Status tells covered lookups from gaps in the rate table.
type Status string

const (
	StatusCovered    Status = "covered"
	StatusNoCoverage Status = "no_coverage"
)

// Resolution is the result of a price lookup. A NoCoverage resolution is a
// normal value, not an error.
type Resolution struct {
	Status Status              `json:"status"`
	Key    domain.AttributeKey `json:"key"`
	Date   time.Time           `json:"date"`
	Period *domain.RatePeriod  `json:"period,omitempty"`
}

func (r Resolution) Covered() bool {
	return r.Status == StatusCovered
}

// Resolver looks up the single active period covering a date.
type Resolver struct {
	periods CoveringFinder
}

func NewResolver(periods CoveringFinder) *Resolver {
	return &Resolver{periods: periods}
}

// Resolve returns the period of key covering date. More than one match is
// a corrupted rate table and is reported as a data inconsistency.
func (r *Resolver) Resolve(ctx context.Context, date time.Time, key domain.AttributeKey) (Resolution, error) {
	res := Resolution{Status: StatusNoCoverage, Key: key, Date: date}

	found, err := r.periods.FindCovering(ctx, key, date)
	if err != nil {
		return res, fmt.Errorf("find covering period: %w", err)
	}

	switch len(found) {
	case 0:
		return res, nil
	case 1:
		p := found[0]
		res.Status = StatusCovered
		res.Period = &p
		return res, nil
	default:
		ids := make([]int64, 0, len(found))
		for _, p := range found {
			ids = append(ids, p.ID)
		}
		return res, apperr.DataInconsistency(
			fmt.Sprintf("%d active rate periods cover %s for %s", len(found), date.Format("2006-01-02"), key),
		).WithContext("period_ids", ids)
	}
}
