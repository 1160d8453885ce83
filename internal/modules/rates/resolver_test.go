package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tourpricing/internal/domain"
	"tourpricing/internal/pkg/apperr"
)

type MockCoveringFinder struct {
	mock.Mock
}

func (m *MockCoveringFinder) FindCovering(ctx context.Context, key domain.AttributeKey, date time.Time) ([]domain.RatePeriod, error) {
	args := m.Called(ctx, key, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatePeriod), args.Error(1)
}

func TestResolver_Covered(t *testing.T) {
	finder := new(MockCoveringFinder)
	p := period(7, keyK, day(time.April, 1), day(time.December, 31), 5000)
	finder.On("FindCovering", mock.Anything, keyK, day(time.July, 4)).Return([]domain.RatePeriod{p}, nil)

	res, err := NewResolver(finder).Resolve(context.Background(), day(time.July, 4), keyK)

	require.NoError(t, err)
	assert.True(t, res.Covered())
	assert.Equal(t, int64(7), res.Period.ID)
	finder.AssertExpectations(t)
}

func TestResolver_NoCoverageIsNotAnError(t *testing.T) {
	finder := new(MockCoveringFinder)
	finder.On("FindCovering", mock.Anything, keyK, mock.Anything).Return([]domain.RatePeriod{}, nil)

	res, err := NewResolver(finder).Resolve(context.Background(), day(time.July, 4), keyK)

	require.NoError(t, err)
	assert.Equal(t, StatusNoCoverage, res.Status)
	assert.Equal(t, keyK, res.Key)
	assert.Nil(t, res.Period)
}

func TestResolver_MultipleMatchesIsDataInconsistency(t *testing.T) {
	finder := new(MockCoveringFinder)
	finder.On("FindCovering", mock.Anything, keyK, mock.Anything).Return([]domain.RatePeriod{
		period(1, keyK, day(time.July, 1), day(time.July, 31), 5000),
		period(2, keyK, day(time.July, 4), day(time.July, 10), 6000),
	}, nil)

	_, err := NewResolver(finder).Resolve(context.Background(), day(time.July, 4), keyK)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDataInconsistency)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, e.Context["period_ids"])
}

func TestResolver_StorageErrorPropagates(t *testing.T) {
	finder := new(MockCoveringFinder)
	finder.On("FindCovering", mock.Anything, keyK, mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewResolver(finder).Resolve(context.Background(), day(time.July, 4), keyK)

	assert.ErrorContains(t, err, "db down")
	assert.NotErrorIs(t, err, apperr.ErrDataInconsistency)
}
