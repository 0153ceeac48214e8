package expiry

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify_Boundaries(t *testing.T) {
	today := date(2024, time.March, 10)

	tests := []struct {
		days int
		want Status
	}{
		{-400, Expired},
		{-1, Expired},
		{0, Remove},
		{3, Remove},
		{5, Remove},
		{6, Within30Days},
		{30, Within30Days},
		{31, Held},
		{365, Held},
	}
	for _, tt := range tests {
		got := Classify(today.AddDate(0, 0, tt.days), today)
		assert.Equal(t, tt.want, got, "d=%d", tt.days)
	}
}

func TestDaysUntil_AcrossMonthAndYear(t *testing.T) {
	assert.Equal(t, 1, DaysUntil(date(2024, time.January, 1), date(2023, time.December, 31)))
	assert.Equal(t, 29, DaysUntil(date(2024, time.March, 1), date(2024, time.February, 1)))
	assert.Equal(t, -366, DaysUntil(date(2023, time.March, 1), date(2024, time.March, 1)))
}

func TestDaysUntil_FarFuture(t *testing.T) {
	today := date(2025, time.June, 10)
	assert.Equal(t, 135505, DaysUntil(date(2396, time.June, 10), today))
	assert.Greater(t, DaysUntil(date(2500, time.January, 1), today), DaysUntil(date(2400, time.January, 1), today))
	assert.Equal(t, 2912647, DaysUntil(date(9999, time.December, 31), today))
	assert.Equal(t, Held, Classify(date(9999, time.December, 31), today))
}

func TestDaysUntil_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.May, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, time.May, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(early, late))
	assert.Equal(t, 0, DaysUntil(late, date(2024, time.May, 1)))
}

func TestDaysUntil_IgnoresDSTShift(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	before := time.Date(2024, time.March, 30, 12, 0, 0, 0, loc)
	after := time.Date(2024, time.April, 1, 0, 30, 0, 0, loc)
	assert.Equal(t, 2, DaysUntil(after, before))
}

func TestToday_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:00 UTC on the 2nd is still the 1st in Sao Paulo.
	now := time.Date(2024, time.June, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.June, 1), Today(now, loc))
	assert.Equal(t, date(2024, time.June, 2), Today(now, nil))
}

func TestParseStatus(t *testing.T) {
	for _, st := range Statuses() {
		got, err := ParseStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseStatus("expired")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}
