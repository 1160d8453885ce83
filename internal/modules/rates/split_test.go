package rates

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourpricing/internal/domain"
)

var keyK = domain.HotelKey(10, 1, 2, 3)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func period(id int64, key domain.AttributeKey, start, end time.Time, price int64) domain.RatePeriod {
	return domain.RatePeriod{
		ID:           id,
		AttributeKey: key,
		StartDate:    start,
		EndDate:      end,
		Price:        decimal.NewFromInt(price),
		IsActive:     true,
	}
}

type seg struct {
	start, end time.Time
	price      int64
}

func assertSegments(t *testing.T, want []seg, got []domain.RatePeriod) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].start, got[i].StartDate, "segment %d start", i)
		assert.Equal(t, want[i].end, got[i].EndDate, "segment %d end", i)
		assert.True(t, decimal.NewFromInt(want[i].price).Equal(got[i].Price), "segment %d price %s", i, got[i].Price)
		assert.Equal(t, keyK, got[i].AttributeKey)
		assert.True(t, got[i].IsActive)
		assert.Zero(t, got[i].ID)
	}
}

func TestSplitInsert_InnerRangeSplitsOriginalInThree(t *testing.T) {
	existing := []domain.RatePeriod{period(1, keyK, day(time.April, 1), day(time.December, 31), 5000)}

	plan := SplitInsert(existing, period(0, keyK, day(time.July, 1), day(time.September, 30), 7000))

	assert.Equal(t, []int64{1}, plan.PeriodsToDelete)
	assertSegments(t, []seg{
		{day(time.April, 1), day(time.June, 30), 5000},
		{day(time.July, 1), day(time.September, 30), 7000},
		{day(time.October, 1), day(time.December, 31), 5000},
	}, plan.PeriodsToCreate)
}

func TestSplitInsert_StraddlingTwoPeriods(t *testing.T) {
	existing := []domain.RatePeriod{
		period(1, keyK, day(time.January, 1), day(time.June, 30), 4000),
		period(2, keyK, day(time.July, 1), day(time.December, 31), 6000),
	}

	plan := SplitInsert(existing, period(0, keyK, day(time.May, 1), day(time.August, 31), 8000))

	assert.ElementsMatch(t, []int64{1, 2}, plan.PeriodsToDelete)
	assertSegments(t, []seg{
		{day(time.January, 1), day(time.April, 30), 4000},
		{day(time.May, 1), day(time.August, 31), 8000},
		{day(time.September, 1), day(time.December, 31), 6000},
	}, plan.PeriodsToCreate)
}

func TestSplitInsert_ExactMatchReplaces(t *testing.T) {
	existing := []domain.RatePeriod{period(1, keyK, day(time.March, 1), day(time.March, 31), 3000)}

	plan := SplitInsert(existing, period(0, keyK, day(time.March, 1), day(time.March, 31), 3500))

	assert.Equal(t, []int64{1}, plan.PeriodsToDelete)
	assertSegments(t, []seg{{day(time.March, 1), day(time.March, 31), 3500}}, plan.PeriodsToCreate)
}

func TestSplitInsert_NoOverlap(t *testing.T) {
	existing := []domain.RatePeriod{period(1, keyK, day(time.January, 1), day(time.January, 31), 3000)}

	plan := SplitInsert(existing, period(0, keyK, day(time.February, 1), day(time.February, 28), 3100))

	assert.Empty(t, plan.PeriodsToDelete)
	assertSegments(t, []seg{{day(time.February, 1), day(time.February, 28), 3100}}, plan.PeriodsToCreate)
}

func TestSplitInsert_SharedStartEmitsNoEmptyBeforeSegment(t *testing.T) {
	existing := []domain.RatePeriod{period(1, keyK, day(time.March, 1), day(time.March, 31), 3000)}

	plan := SplitInsert(existing, period(0, keyK, day(time.March, 1), day(time.March, 10), 3900))

	assertSegments(t, []seg{
		{day(time.March, 1), day(time.March, 10), 3900},
		{day(time.March, 11), day(time.March, 31), 3000},
	}, plan.PeriodsToCreate)
}

func TestSplitInsert_SharedEndEmitsNoEmptyAfterSegment(t *testing.T) {
	existing := []domain.RatePeriod{period(1, keyK, day(time.March, 1), day(time.March, 31), 3000)}

	plan := SplitInsert(existing, period(0, keyK, day(time.March, 20), day(time.March, 31), 3900))

	assertSegments(t, []seg{
		{day(time.March, 1), day(time.March, 19), 3000},
		{day(time.March, 20), day(time.March, 31), 3900},
	}, plan.PeriodsToCreate)
}

func TestSplitInsert_FullyContainedPeriodIsSuperseded(t *testing.T) {
	existing := []domain.RatePeriod{
		period(1, keyK, day(time.March, 5), day(time.March, 6), 1000),
		period(2, keyK, day(time.March, 10), day(time.March, 12), 1100),
	}

	plan := SplitInsert(existing, period(0, keyK, day(time.March, 1), day(time.March, 31), 2000))

	assert.ElementsMatch(t, []int64{1, 2}, plan.PeriodsToDelete)
	assertSegments(t, []seg{{day(time.March, 1), day(time.March, 31), 2000}}, plan.PeriodsToCreate)
}

func TestSplitInsert_SingleDayTouchingBoundaries(t *testing.T) {
	existing := []domain.RatePeriod{period(1, keyK, day(time.March, 1), day(time.March, 3), 1000)}

	plan := SplitInsert(existing, period(0, keyK, day(time.March, 2), day(time.March, 2), 1500))

	assertSegments(t, []seg{
		{day(time.March, 1), day(time.March, 1), 1000},
		{day(time.March, 2), day(time.March, 2), 1500},
		{day(time.March, 3), day(time.March, 3), 1000},
	}, plan.PeriodsToCreate)
}

func TestSplitInsert_IgnoresOtherKeysAndInactive(t *testing.T) {
	other := domain.HotelKey(10, 1, 2, 4)
	inactive := period(3, keyK, day(time.March, 1), day(time.March, 31), 900)
	inactive.IsActive = false
	existing := []domain.RatePeriod{
		period(1, other, day(time.March, 1), day(time.March, 31), 3000),
		period(2, domain.VehicleKey(10), day(time.March, 1), day(time.March, 31), 3000),
		inactive,
	}

	plan := SplitInsert(existing, period(0, keyK, day(time.March, 1), day(time.March, 31), 3100))

	assert.Empty(t, plan.PeriodsToDelete)
	assertSegments(t, []seg{{day(time.March, 1), day(time.March, 31), 3100}}, plan.PeriodsToCreate)
}

func TestSplitInsert_AcrossYearAndLeapDay(t *testing.T) {
	existing := []domain.RatePeriod{{
		ID:           1,
		AttributeKey: keyK,
		StartDate:    time.Date(2027, time.December, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2028, time.March, 31, 0, 0, 0, 0, time.UTC),
		Price:        decimal.NewFromInt(100),
		IsActive:     true,
	}}
	newPeriod := domain.RatePeriod{
		AttributeKey: keyK,
		StartDate:    time.Date(2028, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2028, time.February, 28, 0, 0, 0, 0, time.UTC),
		Price:        decimal.NewFromInt(200),
	}

	plan := SplitInsert(existing, newPeriod)

	require.Len(t, plan.PeriodsToCreate, 3)
	assert.Equal(t, time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC), plan.PeriodsToCreate[0].EndDate)
	assert.Equal(t, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), plan.PeriodsToCreate[2].StartDate)
}
