package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/dateutil"
	"family-planner/internal/model"
)

func TestMonthGridShape(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2024, time.March},
		{2024, time.February}, // leap
		{2023, time.February},
		{2024, time.September}, // starts on Sunday, max prefix
		{2024, time.July},      // starts on Monday, no prefix
		{1999, time.December},
		{2100, time.January},
	}

	for _, tc := range months {
		cells := MonthGrid(tc.year, tc.month, nil, fri)
		require.Len(t, cells, CalendarCells, "%d-%d", tc.year, tc.month)

		// Cells are contiguous calendar dates, no gaps or duplicates.
		for i := 1; i < len(cells); i++ {
			assert.Equal(t, 1, dateutil.DiffDays(cells[i].Date, cells[i-1].Date),
				"%d-%d cell %d", tc.year, tc.month, i)
		}

		// The first row starts on Monday.
		assert.Equal(t, time.Monday, cells[0].Date.Weekday())
	}
}

func TestMonthGridMarch2024(t *testing.T) {
	// March 2024 starts on a Friday: four cells of February first.
	cells := MonthGrid(2024, time.March, nil, fri)

	for i, wantDay := range []int{26, 27, 28, 29} {
		assert.Equal(t, wantDay, cells[i].Day, "leap February tail")
		assert.True(t, cells[i].OtherMonth)
	}

	assert.Equal(t, 1, cells[4].Day)
	assert.False(t, cells[4].OtherMonth)
	assert.Equal(t, 31, cells[4+30].Day)
	assert.False(t, cells[4+30].OtherMonth)

	// Remaining cells belong to April, numbered from 1.
	assert.Equal(t, 1, cells[35].Day)
	assert.True(t, cells[35].OtherMonth)
	assert.Equal(t, 7, cells[41].Day)
	assert.True(t, cells[41].OtherMonth)
}

func TestMonthGridNoPrefixWhenMonthStartsOnMonday(t *testing.T) {
	// July 2024 starts on a Monday.
	cells := MonthGrid(2024, time.July, nil, fri)
	assert.Equal(t, 1, cells[0].Day)
	assert.False(t, cells[0].OtherMonth)
}

func TestMonthGridTodayFlag(t *testing.T) {
	cells := MonthGrid(2024, time.March, nil, fri)

	var todays []int
	for i, cell := range cells {
		if cell.Today {
			todays = append(todays, i)
		}
	}
	require.Len(t, todays, 1)
	assert.Equal(t, 15, cells[todays[0]].Day)

	// Another month has no today cell at all.
	for _, cell := range MonthGrid(2024, time.April, nil, fri) {
		assert.False(t, cell.Today)
	}
}

func TestMonthGridTaskLookup(t *testing.T) {
	tasks := []model.Task{
		openTask(1, "2024-03-15"),
		openTask(2, "2024-03-15"),
		openTask(3, "2024-02-29"), // visible in the leap-February tail
	}
	cells := MonthGrid(2024, time.March, tasks, fri)

	byKey := make(map[string]CalendarCell, len(cells))
	for _, cell := range cells {
		byKey[cell.Key()] = cell
	}

	assert.Equal(t, []int{1, 2}, ids(byKey["2024-03-15"].Tasks))
	assert.True(t, byKey["2024-03-15"].HasTasks())
	assert.Equal(t, []int{3}, ids(byKey["2024-02-29"].Tasks))
	assert.False(t, byKey["2024-03-16"].HasTasks())
}

func TestMonthNavigationRollsYear(t *testing.T) {
	y, m := PrevMonth(2024, time.January)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = NextMonth(2024, time.December)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)

	y, m = NextMonth(2024, time.March)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.April, m)
}

func TestMonthTitle(t *testing.T) {
	assert.Equal(t, "Март 2024", MonthTitle(2024, time.March))
	assert.Equal(t, "Декабрь 1999", MonthTitle(1999, time.December))
}
