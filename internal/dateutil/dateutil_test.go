package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestKeyRoundTrip(t *testing.T) {
	parsed, err := Parse("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", Key(parsed))
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "15.03.2024", "2024-3-15"} {
		_, err := Parse(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestTodayTomorrowKeys(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 45, 0, 0, time.Local)
	assert.Equal(t, "2024-03-15", TodayKey(now))
	assert.Equal(t, "2024-03-16", TomorrowKey(now))

	// Tomorrow rolls over month and year boundaries.
	assert.Equal(t, "2025-01-01", TomorrowKey(date(2024, time.December, 31)))
}

func TestDiffDays(t *testing.T) {
	now := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.Local)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", date(2024, time.March, 15), 0},
		{"tomorrow", date(2024, time.March, 16), 1},
		{"five days out", date(2024, time.March, 20), 5},
		{"next month", date(2024, time.April, 1), 17},
		{"yesterday", date(2024, time.March, 14), -1},
		{"across year", date(2025, time.January, 1), 292},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffDays(tt.date, now))
		})
	}
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(date(2024, time.March, 1), date(2024, time.March, 31)))
	assert.False(t, SameMonth(date(2024, time.March, 31), date(2024, time.April, 1)))
	assert.False(t, SameMonth(date(2023, time.March, 15), date(2024, time.March, 15)))
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap
		{2023, time.February, 28},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 only
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%d", tt.year, tt.month)
	}
}

func TestFormatRu(t *testing.T) {
	assert.Equal(t, "15.03.2024", FormatRu("2024-03-15"))
	assert.Equal(t, "not-a-date", FormatRu("not-a-date"))
}

func TestMonthNameRu(t *testing.T) {
	assert.Equal(t, "Январь", MonthNameRu(time.January))
	assert.Equal(t, "Март", MonthNameRu(time.March))
	assert.Equal(t, "Декабрь", MonthNameRu(time.December))
}
