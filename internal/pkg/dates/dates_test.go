package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeepsLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2026, 7, 1, 2, 30, 0, 0, loc)

	out := Normalize(in)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), out)
	assert.True(t, IsNormalized(out))
	assert.False(t, IsNormalized(in))
}

func TestParseAndAddDaysAcrossMonthEnd(t *testing.T) {
	d, err := Parse("2026-06-30")
	require.NoError(t, err)

	assert.Equal(t, "2026-07-01", Format(AddDays(d, 1)))
	assert.Equal(t, "2026-06-29", Format(AddDays(d, -1)))

	_, err = Parse("30/06/2026")
	assert.Error(t, err)
}
